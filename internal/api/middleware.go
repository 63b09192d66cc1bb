package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// userIDKey is the fiber locals key the auth middleware stores the
// authenticated user's ID under.
const userIDKey = "userID"

// requireAuth validates the Bearer access token and stores the user ID
// in the request locals for handlers to pick up.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	userID, err := s.auth.VerifyAccess(strings.TrimPrefix(header, prefix))
	if err != nil {
		return err
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

// currentUserID returns the user ID set by requireAuth.
func currentUserID(c *fiber.Ctx) int {
	return c.Locals(userIDKey).(int)
}

// rateLimiter limits each client IP to the given number of requests per
// minute. Idle clients are swept out periodically so the map does not
// grow without bound.
func rateLimiter(perMinute int) fiber.Handler {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		for {
			time.Sleep(5 * time.Minute)
			mu.Lock()
			for ip, cl := range clients {
				if time.Since(cl.lastSeen) > 10*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *fiber.Ctx) error {
		ip := c.IP()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &client{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)}
			clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		mu.Unlock()

		if !cl.limiter.Allow() {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		}
		return c.Next()
	}
}
