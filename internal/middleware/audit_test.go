package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/service"
)

type recorderStub struct {
	mu      sync.Mutex
	entries []service.AuditEntry
	err     error
}

func (r *recorderStub) Record(_ context.Context, entry service.AuditEntry) (dto.AdminLogResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dto.AdminLogResponse{}, r.err
	}
	r.entries = append(r.entries, entry)
	return dto.AdminLogResponse{}, nil
}

func (r *recorderStub) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *recorderStub) last() service.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[len(r.entries)-1]
}

func newAuditTestApp(recorder service.AuditRecorder, opts AuditOptions, userID interface{}, role string, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != nil {
			c.Locals("user_id", userID)
		}
		if role != "" {
			c.Locals("user_role", role)
		}
		return c.Next()
	})
	app.Post("/targets/:id", WithAudit(handler, recorder, zerolog.Nop(), opts))
	return app
}

func TestWithAuditRecordsExactlyOnceOnSuccess(t *testing.T) {
	recorder := &recorderStub{}
	opts := AuditOptions{
		Action:     "add_minutes",
		TargetType: "user",
		TargetID: func(c *fiber.Ctx) *string {
			id := c.Params("id")
			return &id
		},
		Details: func(c *fiber.Ctx) map[string]interface{} {
			return map[string]interface{}{"minutes": 30}
		},
	}

	app := newAuditTestApp(recorder, opts, uint(7), "admin", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/targets/42", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		return recorder.count() == 1
	}, time.Second, 10*time.Millisecond)

	entry := recorder.last()
	require.Equal(t, uint(7), entry.AdminID)
	require.Equal(t, "add_minutes", entry.Action)
	require.Equal(t, "user", entry.TargetType)
	require.NotNil(t, entry.TargetID)
	require.Equal(t, "42", *entry.TargetID)
	require.Equal(t, 30, entry.Details["minutes"])

	// Still exactly one entry after the write settles.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, recorder.count())
}

func TestWithAuditSkipsFailedRequests(t *testing.T) {
	statuses := []int{fiber.StatusBadRequest, fiber.StatusNotFound, fiber.StatusInternalServerError}

	for _, status := range statuses {
		recorder := &recorderStub{}
		app := newAuditTestApp(recorder, AuditOptions{Action: "add_minutes", TargetType: "user"}, uint(7), "admin", func(c *fiber.Ctx) error {
			return c.SendStatus(status)
		})

		resp, err := app.Test(httptest.NewRequest("POST", "/targets/42", nil))
		require.NoError(t, err)
		require.Equal(t, status, resp.StatusCode)

		time.Sleep(50 * time.Millisecond)
		require.Zero(t, recorder.count(), "status %d must not be audited", status)
	}
}

func TestWithAuditSkipsNonAdminCallers(t *testing.T) {
	recorder := &recorderStub{}
	app := newAuditTestApp(recorder, AuditOptions{Action: "view_users", TargetType: "user"}, uint(9), "member", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/targets/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	time.Sleep(50 * time.Millisecond)
	require.Zero(t, recorder.count())
}

func TestWithAuditSkipsUnauthenticatedCallers(t *testing.T) {
	recorder := &recorderStub{}
	app := newAuditTestApp(recorder, AuditOptions{Action: "view_users", TargetType: "user"}, nil, "", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/targets/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	time.Sleep(50 * time.Millisecond)
	require.Zero(t, recorder.count())
}

func TestWithAuditFailureNeverReachesClient(t *testing.T) {
	recorder := &recorderStub{err: errors.New("database unavailable")}
	app := newAuditTestApp(recorder, AuditOptions{Action: "view_users", TargetType: "user"}, uint(7), "admin", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString(`{"ok":true}`)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/targets/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `"ok":true`))
}

func TestWithAuditExtractsRequestStateBeforeHandlerRuns(t *testing.T) {
	recorder := &recorderStub{}
	opts := AuditOptions{
		Action:     "add_minutes",
		TargetType: "user",
		Details: func(c *fiber.Ctx) map[string]interface{} {
			return map[string]interface{}{"query": c.Query("reason")}
		},
	}

	app := newAuditTestApp(recorder, opts, uint(7), "admin", func(c *fiber.Ctx) error {
		// Mutating request state after extraction must not leak into the entry.
		c.Request().URI().SetQueryString("reason=mutated")
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/targets/5?reason=promo", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		return recorder.count() == 1
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, "promo", recorder.last().Details["query"])
}
