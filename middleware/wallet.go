// middleware/wallet.go
package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// WalletContextMiddleware extracts the connected wallet address forwarded by
// the Gateway. Routes behind it always act on behalf of one wallet, so a
// missing address is a hard 401 — there is no anonymous ledger access.
func WalletContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		address := c.Get("X-Wallet-Address")
		if address == "" {
			log.Printf("❌ [WALLET_CTX] X-Wallet-Address required but missing on %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Wallet-Address — connect a wallet through the gateway first",
			})
		}

		// Addresses are opaque case-sensitive identifiers; forwarded as-is.
		c.Locals("wallet_address", address)

		log.Printf("👛 [WALLET_CTX] Wallet=%s | Path: %s", address, c.Path())
		return c.Next()
	}
}
