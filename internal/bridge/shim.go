package bridge

import (
	"strconv"
	"strings"
)

const shimTemplate = `(function () {
  if (window.__PAKE__) return;
  var base = __BASE__;
  var token = __TOKEN__;
  var listeners = {};

  function invoke(command, args) {
    return fetch(base + "/invoke/" + command, {
      method: "POST",
      headers: { "Authorization": "Bearer " + token, "Content-Type": "application/json" },
      body: JSON.stringify(args || {})
    }).then(function (res) {
      return res.json().then(function (body) {
        if (!res.ok) throw new Error(body.error || res.statusText);
        return body.result;
      });
    });
  }

  function connect() {
    var ws = new WebSocket(base.replace(/^http/, "ws") + "/events?token=" + encodeURIComponent(token));
    ws.onmessage = function (e) {
      var ev = JSON.parse(e.data);
      (listeners[ev.type] || []).forEach(function (fn) { fn(ev); });
    };
    ws.onclose = function () { setTimeout(connect, 2000); };
  }

  function on(type, fn) {
    (listeners[type] = listeners[type] || []).push(fn);
  }

  connect();
  window.__PAKE__ = { invoke: invoke, on: on };
})();`

// InitScript returns the page script that exposes window.__PAKE__.invoke
// and window.__PAKE__.on for the bridge at baseURL
func InitScript(baseURL, token string) string {
	r := strings.NewReplacer(
		"__BASE__", strconv.Quote(baseURL),
		"__TOKEN__", strconv.Quote(token),
	)
	return r.Replace(shimTemplate)
}
