package bridge

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// AcceptEncoding is advertised on downloads. Setting it by hand turns off
// net/http's transparent gzip, so DecodeBody handles every listed coding.
const AcceptEncoding = "br, zstd, gzip, deflate"

// DecodeBody wraps body with a decoder for the response Content-Encoding.
// Closing the result closes body.
func DecodeBody(contentEncoding string, body io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "", "identity":
		return body, nil
	case "br":
		return wrap(io.NopCloser(brotli.NewReader(body)), body), nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("failed to read gzip body: %w", err)
		}
		return wrap(zr, body), nil
	case "deflate":
		zr, err := zlib.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("failed to read deflate body: %w", err)
		}
		return wrap(zr, body), nil
	case "zstd":
		dec, err := zstd.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("failed to read zstd body: %w", err)
		}
		return wrap(dec.IOReadCloser(), body), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", contentEncoding)
	}
}

type decodedBody struct {
	io.Reader
	decoder io.Closer
	body    io.Closer
}

func wrap(decoder io.ReadCloser, body io.Closer) io.ReadCloser {
	return &decodedBody{Reader: decoder, decoder: decoder, body: body}
}

func (d *decodedBody) Close() error {
	d.decoder.Close()
	return d.body.Close()
}
