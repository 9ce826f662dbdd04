// This file holds the shared plumbing for the back-office handlers: the
// handler bundle, actor extraction and the best-effort activity recording
// step that follows every privileged mutation.
package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/queue"
	"github.com/rivieraprestige/concierge-api/internal/repository"
	activity_publisher "github.com/rivieraprestige/concierge-api/internal/service"
)

// ActivityPublishFunc publishes one audit event. Injected so tests can
// observe events without a broker.
type ActivityPublishFunc func(ctx context.Context, ev queue.ActivityEvent) error

// AdminHandler bundles the repositories behind the back-office tabs.
type AdminHandler struct {
	Properties  *repository.PropertyRepo
	Experiences *repository.ExperienceRepo
	Articles    *repository.ArticleRepo
	Inquiries   *repository.InquiryRepo
	Users       *repository.UserRepo
	Roles       *repository.RoleRepo
	Activity    *repository.ActivityRepo
	Publish     ActivityPublishFunc
}

// NewAdminHandler constructs an AdminHandler wired to the RabbitMQ publisher.
func NewAdminHandler(
	properties *repository.PropertyRepo,
	experiences *repository.ExperienceRepo,
	articles *repository.ArticleRepo,
	inquiries *repository.InquiryRepo,
	users *repository.UserRepo,
	roles *repository.RoleRepo,
	activity *repository.ActivityRepo,
) *AdminHandler {
	return &AdminHandler{
		Properties:  properties,
		Experiences: experiences,
		Articles:    articles,
		Inquiries:   inquiries,
		Users:       users,
		Roles:       roles,
		Activity:    activity,
		Publish:     activity_publisher.PublishActivity,
	}
}

// getUserID extracts the authenticated user's id placed in context by JWTAuth.
func getUserID(c echo.Context) (uint64, error) {
	if uid, ok := c.Get("user_id").(uint64); ok && uid != 0 {
		return uid, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// recordActivity emits one audit event for a privileged mutation that has
// already succeeded. It is explicitly fire-and-forget: publishing runs on its
// own goroutine with its own deadline, and a failure is logged by the
// publisher and otherwise ignored. It never blocks or rolls back the
// mutation that triggered it.
func (h *AdminHandler) recordActivity(c echo.Context, action, entityType string, entityID uint64, details map[string]string) {
	actorID, err := getUserID(c)
	if err != nil {
		return
	}
	email, _ := c.Get("email").(string)

	// Display name is decoration on the audit row; skip it on lookup failure.
	name := ""
	lookupCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	if u, err := h.Users.GetByID(lookupCtx, actorID); err == nil {
		name = u.DisplayName
	}
	cancel()

	ev := queue.ActivityEvent{
		EventID:    uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   strconv.FormatUint(entityID, 10),
		Details:    details,
		ActorID:    actorID,
		ActorEmail: email,
		ActorName:  name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	publish := h.Publish
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = publish(ctx, ev) // best effort
	}()
}

// optionalU32 maps a zero form value to an absent column value.
func optionalU32(v uint32) *uint32 {
	if v == 0 {
		return nil
	}
	return &v
}

// optionalU64 maps a zero form value to an absent column value.
func optionalU64(v uint64) *uint64 {
	if v == 0 {
		return nil
	}
	return &v
}

// optionalStr maps an empty form value to an absent column value.
func optionalStr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
