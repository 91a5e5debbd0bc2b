package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// unaryHandler builds one Connect handler with the JSON codecs installed.
func unaryHandler[Req, Res any](
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) *connect.Handler {
	return connect.NewUnaryHandler(procedure, fn, handlerOptions(opts)...)
}

// route dispatches by exact procedure path, like a generated service handler.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
