// pkg/browser/manager.go
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cdpdriver/internal/config"
)

// Manager owns the connection to a running browser's DevTools endpoint.
// All tab session contexts derive from its browser context; closing the
// manager tears them all down.
type Manager struct {
	logger *zap.Logger

	allocatorCtx    context.Context
	allocatorCancel context.CancelFunc
	browserCtx      context.Context
	browserCancel   context.CancelFunc
}

// NewManager attaches to the browser at cfg.RemoteURL. The adapter never
// launches a browser of its own.
func NewManager(ctx context.Context, logger *zap.Logger, cfg config.BrowserConfig) (*Manager, error) {
	m := &Manager{logger: logger.Named("browser_manager")}

	m.allocatorCtx, m.allocatorCancel = chromedp.NewRemoteAllocator(ctx, cfg.RemoteURL, chromedp.NoModifyURL)
	m.browserCtx, m.browserCancel = chromedp.NewContext(m.allocatorCtx)

	// An empty run forces the websocket dial so a bad endpoint fails here
	// rather than on the first command.
	attachCtx, cancel := context.WithTimeout(m.browserCtx, cfg.ConnectTimeout)
	defer cancel()
	if err := chromedp.Run(attachCtx); err != nil {
		m.Close()
		return nil, fmt.Errorf("connect to browser at %s: %w", cfg.RemoteURL, err)
	}

	m.logger.Info("Connected to browser", zap.String("remote_url", cfg.RemoteURL))
	return m, nil
}

// Context returns the browser context tab sessions derive from.
func (m *Manager) Context() context.Context {
	return m.browserCtx
}

// Pages lists the page targets currently open in the browser.
func (m *Manager) Pages(ctx context.Context) ([]*target.Info, error) {
	infos, err := chromedp.Targets(m.browserCtx)
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}
	return pagesOnly(infos), nil
}

// Close disconnects from the browser and cancels every derived context.
func (m *Manager) Close() {
	if m.browserCancel != nil {
		m.browserCancel()
	}
	if m.allocatorCancel != nil {
		m.allocatorCancel()
	}
}

// pagesOnly filters the target list down to page targets; browsers also
// report workers, extensions and the like.
func pagesOnly(infos []*target.Info) []*target.Info {
	pages := make([]*target.Info, 0, len(infos))
	for _, info := range infos {
		if info.Type == "page" {
			pages = append(pages, info)
		}
	}
	return pages
}
