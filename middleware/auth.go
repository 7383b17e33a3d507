package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type contextKey string

const DeviceIDKey contextKey = "deviceID"

// DeviceAuthMiddleware extracts the device identity from the X-Device-ID
// header. The tracker is local-first: the device id is the storage partition
// key, there is no account system behind it.
func DeviceAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := strings.TrimSpace(r.Header.Get("X-Device-ID"))
		if deviceID == "" {
			respondWithError(w, http.StatusUnauthorized, "X-Device-ID header required")
			return
		}
		if len(deviceID) > 128 {
			respondWithError(w, http.StatusUnauthorized, "X-Device-ID header too long")
			return
		}

		ctx := context.WithValue(r.Context(), DeviceIDKey, deviceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDeviceID extracts the device id from context.
func GetDeviceID(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDKey).(string)
	return deviceID, ok
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(fmt.Sprintf(`{"error": "%s"}`, message)))
}
