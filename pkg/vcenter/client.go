// Package vcenter wraps the vSphere and vSAN management APIs behind a single
// authenticated session handle.
package vcenter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vsan"
	"go.uber.org/zap"

	"vsancheck/pkg/config"
)

// DefaultTimeout is the default deadline for remote operations.
const DefaultTimeout = 60 * time.Second

// minAPIVersion is the lowest vCenter API major version with the vSAN
// management endpoint.
const minAPIVersion = 6

// Client is an authenticated vCenter session plus a lazily-created vSAN
// management client. One instance is shared for the process lifetime; every
// remote operation runs under its own timeout.
type Client struct {
	vc      *govmomi.Client
	health  *vsan.Client
	host    string
	timeout time.Duration
	logger  *zap.Logger
}

// Connect authenticates against the configured vCenter and verifies the
// endpoint can serve vSAN queries.
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Client, error) {
	u, err := soap.ParseURL(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("invalid vCenter address: %w", err)
	}
	u.User = url.UserPassword(cfg.User, cfg.Password)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	c, err := connect(ctx, u, cfg.Insecure, cfg.Host, logger)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.Timeout()

	return c, nil
}

func connect(ctx context.Context, u *url.URL, insecure bool, host string, logger *zap.Logger) (*Client, error) {
	vc, err := govmomi.NewClient(ctx, u, insecure)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", host, err)
	}

	c := &Client{
		vc:      vc,
		host:    host,
		timeout: DefaultTimeout,
		logger:  logger,
	}

	if err := c.checkEndpoint(); err != nil {
		_ = vc.Logout(ctx)
		return nil, err
	}

	about := vc.ServiceContent.About
	logger.Debug("connected to vCenter",
		zap.String("host", host),
		zap.String("name", about.FullName),
		zap.String("api_version", about.ApiVersion))

	return c, nil
}

// checkEndpoint validates the remote side is a vCenter recent enough to carry
// the vSAN management API.
func (c *Client) checkEndpoint() error {
	about := c.vc.ServiceContent.About

	major := about.ApiVersion
	if i := strings.Index(major, "."); i > 0 {
		major = major[:i]
	}
	v, err := strconv.Atoi(major)
	if err != nil || v < minAPIVersion {
		return fmt.Errorf("host version %s (lower than %d.0) is not supported", about.ApiVersion, minAPIVersion)
	}

	if about.ApiType != "VirtualCenter" {
		return fmt.Errorf("host %s is not a vCenter endpoint", c.host)
	}

	return nil
}

// opCtx bounds one remote operation with the configured timeout.
func (c *Client) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// healthClient returns the vSAN management client, creating it on first use.
func (c *Client) healthClient(ctx context.Context) (*vsan.Client, error) {
	if c.health != nil {
		return c.health, nil
	}

	hc, err := vsan.NewClient(ctx, c.vc.Client)
	if err != nil {
		return nil, fmt.Errorf("failed to reach vSAN management endpoint on %s: %w", c.host, err)
	}
	c.health = hc

	return hc, nil
}

// Host returns the connected vCenter host name.
func (c *Client) Host() string {
	return c.host
}

// Close logs out the session.
func (c *Client) Close(ctx context.Context) {
	if err := c.vc.Logout(ctx); err != nil {
		c.logger.Debug("logout failed", zap.Error(err))
	}
}
