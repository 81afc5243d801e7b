package services

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
)

const (
	RateLimitLogin          = "login"
	RateLimitRegister       = "register"
	RateLimitLessonComplete = "lesson_complete"
	RateLimitAIGenerate     = "ai_generate"
	RateLimitAPIGeneral     = "api_general"
)

// WindowCounter is the counter store behind rate limiting.
type WindowCounter interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	SetFlag(ctx context.Context, key string, ttl time.Duration) error
	FlagTTL(ctx context.Context, key string) (time.Duration, error)
	Delete(ctx context.Context, keys ...string) error
}

type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	counter WindowCounter
	now     func() time.Time
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string        `json:"endpointType"`
	MaxRequests  int           `json:"maxRequests"`
	WindowSize   time.Duration `json:"windowSize"`
	BlockTime    time.Duration `json:"blockTime"`
	Description  string        `json:"description"`
	IsActive     bool          `json:"isActive"`
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.initDefaultConfigs()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.counter = svc.Service(REDIS_SVC).(*RedisService)
	if svc.now == nil {
		svc.now = time.Now
	}
	return nil
}

// ==================== CONFIGURATION MANAGEMENT ====================

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		RateLimitLogin: {
			EndpointType: RateLimitLogin,
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			BlockTime:    30 * time.Minute,
			Description:  "Login attempts rate limit",
			IsActive:     true,
		},
		RateLimitRegister: {
			EndpointType: RateLimitRegister,
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			BlockTime:    time.Hour,
			Description:  "Registration rate limit",
			IsActive:     true,
		},
		RateLimitLessonComplete: {
			EndpointType: RateLimitLessonComplete,
			MaxRequests:  60,
			WindowSize:   time.Hour,
			BlockTime:    30 * time.Minute,
			Description:  "Lesson completion rate limit",
			IsActive:     true,
		},
		RateLimitAIGenerate: {
			EndpointType: RateLimitAIGenerate,
			MaxRequests:  20,
			WindowSize:   time.Hour,
			BlockTime:    time.Hour,
			Description:  "AI generation rate limit",
			IsActive:     true,
		},
		RateLimitAPIGeneral: {
			EndpointType: RateLimitAPIGeneral,
			MaxRequests:  1000,
			WindowSize:   time.Hour,
			BlockTime:    time.Hour,
			Description:  "General API rate limit per IP",
			IsActive:     true,
		},
	}
}

func (svc *RateLimitService) config(endpointType string) (RateLimitConfig, bool) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()

	cfg, ok := svc.configs[endpointType]
	if !ok {
		return RateLimitConfig{}, false
	}
	return *cfg, true
}

// Configs lists every endpoint type, sorted by name.
func (svc *RateLimitService) Configs() []RateLimitConfig {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()

	out := make([]RateLimitConfig, 0, len(svc.configs))
	for _, cfg := range svc.configs {
		out = append(out, *cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndpointType < out[j].EndpointType })
	return out
}

// ==================== CORE RATE LIMITING LOGIC ====================

func windowKey(endpointType, identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpointType, identifier)
}

func blockKey(endpointType, identifier string) string {
	return fmt.Sprintf("ratelimit:block:%s:%s", endpointType, identifier)
}

// IsAllowed counts one request for identifier in a fixed window. Going over
// the limit blocks the identifier for the configured block time.
func (svc *RateLimitService) IsAllowed(ctx context.Context, identifier, endpointType string) (bool, *dto.RateLimitInfo, error) {
	config, exists := svc.config(endpointType)
	if !exists || !config.IsActive {
		return true, &dto.RateLimitInfo{Allowed: true, Remaining: -1}, nil
	}

	now := svc.now()

	blockedFor, err := svc.counter.FlagTTL(ctx, blockKey(endpointType, identifier))
	if err != nil {
		return false, nil, err
	}
	if blockedFor > 0 {
		blockedUntil := now.Add(blockedFor)
		return false, &dto.RateLimitInfo{
			Allowed:      false,
			Limit:        config.MaxRequests,
			Remaining:    0,
			ResetTime:    &blockedUntil,
			BlockedUntil: &blockedUntil,
		}, nil
	}

	count, left, err := svc.counter.IncrementWindow(ctx, windowKey(endpointType, identifier), config.WindowSize)
	if err != nil {
		return false, nil, err
	}

	if count > int64(config.MaxRequests) {
		if err := svc.counter.SetFlag(ctx, blockKey(endpointType, identifier), config.BlockTime); err != nil {
			return false, nil, err
		}
		blockedUntil := now.Add(config.BlockTime)

		log.WithFields(log.Fields{
			"endpoint_type": endpointType,
			"identifier":    identifier,
			"blocked_until": blockedUntil,
		}).Warn("Rate limit exceeded, identifier blocked")

		return false, &dto.RateLimitInfo{
			Allowed:      false,
			Limit:        config.MaxRequests,
			Remaining:    0,
			ResetTime:    &blockedUntil,
			BlockedUntil: &blockedUntil,
		}, nil
	}

	resetTime := now.Add(left)
	return true, &dto.RateLimitInfo{
		Allowed:   true,
		Limit:     config.MaxRequests,
		Remaining: config.MaxRequests - int(count),
		ResetTime: &resetTime,
	}, nil
}

// Reset clears the counter and any block for one identifier.
func (svc *RateLimitService) Reset(ctx context.Context, endpointType, identifier string) error {
	if _, ok := svc.config(endpointType); !ok {
		return shared.NewNotFoundError(nil, "Endpoint type not found")
	}
	if err := svc.counter.Delete(ctx, windowKey(endpointType, identifier), blockKey(endpointType, identifier)); err != nil {
		return shared.NewInternalError(err, "Failed to reset rate limit")
	}
	return nil
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// RateLimit creates a rate limiting middleware for specific endpoint types.
// Counter failures let the request through.
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := svc.getIdentifier(c, endpointType)

		allowed, info, err := svc.IsAllowed(c.UserContext(), identifier, endpointType)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"endpoint_type": endpointType,
				"identifier":    identifier,
			}).Warn("Rate limit check failed")
			return c.Next()
		}

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			return svc.handleRateLimitExceeded(c, endpointType, info)
		}
		return c.Next()
	}
}

// IPRateLimit applies general rate limiting by IP address
func (svc *RateLimitService) IPRateLimit() fiber.Handler {
	return svc.RateLimit(RateLimitAPIGeneral)
}

// ==================== ADMIN HANDLERS ====================

// ListRateLimits godoc
// @Summary List rate limit rules
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=[]RateLimitConfig}
// @Router /api/v1/admin/rate-limits [get]
func (svc *RateLimitService) ListRateLimits() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, fiber.StatusOK, "Success", svc.Configs())
	}
}

// ResetRateLimit godoc
// @Summary Clear a rate limit block
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param endpointType path string true "Endpoint type"
// @Param identifier path string true "User ID, IP or ip:account"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/rate-limits/{endpointType}/{identifier} [delete]
func (svc *RateLimitService) ResetRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Reset(c.UserContext(), c.Params("endpointType"), c.Params("identifier")); err != nil {
			return err
		}
		return shared.ResponseJSON(c, fiber.StatusOK, "Rate limit reset", nil)
	}
}

// ==================== HELPER FUNCTIONS ====================

func (svc *RateLimitService) getIdentifier(c *fiber.Ctx, endpointType string) string {
	switch endpointType {
	case RateLimitLogin, RateLimitRegister:
		// IP plus the account being tried, so one address cannot lock out everyone
		if account := accountFromRequest(c); account != "" {
			return fmt.Sprintf("%s:%s", getClientIP(c), account)
		}
		return getClientIP(c)

	case RateLimitLessonComplete, RateLimitAIGenerate:
		if userID, ok := c.Locals(shared.UserID).(string); ok && userID != "" {
			return userID
		}
		return getClientIP(c)

	default:
		return getClientIP(c)
	}
}

func accountFromRequest(c *fiber.Ctx) string {
	if len(c.Body()) == 0 {
		return ""
	}
	var reqBody map[string]interface{}
	if err := sonic.Unmarshal(c.Body(), &reqBody); err != nil {
		return ""
	}
	for _, field := range []string{"email", "emailOrUsername"} {
		if v, ok := reqBody[field].(string); ok && v != "" {
			return strings.ToLower(strings.TrimSpace(v))
		}
	}
	return ""
}

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil || info.Remaining < 0 {
		return
	}

	c.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))

	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}

	if info.BlockedUntil != nil {
		retryAfter := int(time.Until(*info.BlockedUntil).Seconds())
		if retryAfter > 0 {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		}
	}
}

func (svc *RateLimitService) handleRateLimitExceeded(c *fiber.Ctx, endpointType string, info *dto.RateLimitInfo) error {
	message := getRateLimitMessage(endpointType)

	response := map[string]interface{}{
		"error":   "Rate limit exceeded",
		"message": message,
	}
	if info.BlockedUntil != nil {
		response["blockedUntil"] = info.BlockedUntil.Unix()
		response["retryAfter"] = int(time.Until(*info.BlockedUntil).Seconds())
	}

	return shared.ResponseJSON(c, fiber.StatusTooManyRequests, message, response)
}

func getRateLimitMessage(endpointType string) string {
	messages := map[string]string{
		RateLimitLogin:          "Too many login attempts. Please try again later.",
		RateLimitRegister:       "Too many registration attempts. Please try again later.",
		RateLimitLessonComplete: "Too many lesson completions. Please take a break.",
		RateLimitAIGenerate:     "Too many AI generation requests. Please try again later.",
		RateLimitAPIGeneral:     "Too many requests. Please slow down.",
	}

	if message, exists := messages[endpointType]; exists {
		return message
	}
	return "Too many requests. Please try again later."
}

// ==================== UTILITY FUNCTIONS ====================

func getClientIP(c *fiber.Ctx) string {
	// Check for forwarded IP first (for load balancers/proxies)
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		ip := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if ip != "" {
			return ip
		}
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	remote := c.Context().RemoteAddr().String()
	ip, _, err := net.SplitHostPort(remote)
	if err != nil {
		return remote
	}
	return ip
}
