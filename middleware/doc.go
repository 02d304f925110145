// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Each request gets an X-Request-ID, taken from the request or
generated as a UUID, which is logged and echoed on the response.

# Store Deadlines and Body Limits

	h = middleware.WithTimeout(cfg.StoreTimeout, h)
	h = middleware.WithBodyLimit(cfg.MaxBodyBytes, h)

WithTimeout puts a deadline on the request context that every store call
inherits. WithBodyLimit wraps the body in http.MaxBytesReader.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, DELETE, OPTIONS.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "message")

	var doc models.Document
	if err := middleware.ParseJSONBody(r, &doc); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP; used in request logs.
*/
package middleware
