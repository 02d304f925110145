// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package function exposes the API as a single HTTP function for serverless
// hosts. VotersAPI serves every request through router.NewDispatcher; the
// store is configured from the same environment variables as the server.
package function
