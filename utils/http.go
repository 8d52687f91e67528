// utils/http.go (example)
package utils

import (
	"net/http"
	"time"
)

var HTTPClient = &http.Client{
	Timeout: 30 * time.Second, // webhook and sync calls are small JSON payloads
}
