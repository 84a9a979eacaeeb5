package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	derr "github.com/olliswe/bcp-to-t3-api/internal/domain/errors"
	"github.com/olliswe/bcp-to-t3-api/internal/domain/ports"
	"go.uber.org/zap"
)

const DefaultWaitTimeout = 30 * time.Second

type Config struct {
	// RemoteURL points at a running Chrome DevTools endpoint. When empty a
	// local Chrome is started for every session.
	RemoteURL   string
	Headless    bool
	WaitTimeout time.Duration
}

type Browser struct {
	log *zap.Logger
	cfg Config
}

func New(log *zap.Logger, cfg Config) *Browser {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}

	return &Browser{log: log, cfg: cfg}
}

// Open starts a browser (or attaches to the remote one) and opens a tab.
// The returned session owns both and releases them on Close.
func (b *Browser) Open(ctx context.Context) (ports.PageSession, error) {
	const op = "browser.Open"

	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if b.cfg.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, b.cfg.RemoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	}

	tabCtx, tabCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(b.log.Sugar().Debugf))

	// the first Run launches the browser; it must use the tab context itself
	// so that the browser outlives individual timed actions
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s: %w: start browser: %v", op, derr.ErrSourceUnavailable, err)
	}

	return &session{
		ctx:         tabCtx,
		cancel:      tabCancel,
		allocCancel: allocCancel,
		waitTimeout: b.cfg.WaitTimeout,
	}, nil
}

func (b *Browser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !b.cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	return opts
}

type session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	waitTimeout time.Duration
}

func (s *session) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, s.waitTimeout, chromedp.Navigate(url))
}

func (s *session) WaitFor(ctx context.Context, selector string) error {
	return s.run(ctx, s.waitTimeout, waitAction(selector))
}

func (s *session) SetValue(ctx context.Context, selector, value string) error {
	script, err := setValueScript(selector, value)
	if err != nil {
		return err
	}

	var ok bool
	if err := s.run(ctx, s.waitTimeout, chromedp.Evaluate(script, &ok)); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("set value: no element matches %s", selector)
	}
	return nil
}

func (s *session) Texts(ctx context.Context, selector string) ([]string, error) {
	script, err := textsScript(selector)
	if err != nil {
		return nil, err
	}

	var texts []string
	if err := s.run(ctx, s.waitTimeout, chromedp.Evaluate(script, &texts)); err != nil {
		return nil, err
	}
	return texts, nil
}

func (s *session) Close() error {
	s.cancel()
	s.allocCancel()
	return nil
}

// run executes actions on the tab, bounded by timeout and by the caller's ctx.
func (s *session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	return mapRunError(ctx, err)
}

// waitPresent resolves once a node matching the selector is in the DOM,
// whether or not it is rendered.
var waitPresent = chromedp.WaitReady

func waitAction(selector string) chromedp.QueryAction {
	return waitPresent(selector, chromedp.ByQuery)
}

func mapRunError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return derr.ErrNavigationTimeout
	}
	return fmt.Errorf("%w: %v", derr.ErrSourceUnavailable, err)
}

func jsString(s string) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode js string: %w", err)
	}
	return string(raw), nil
}

// setValueScript selects value in the first element matching selector and
// fires the events a page listens to when a user changes the control.
func setValueScript(selector, value string) (string, error) {
	sel, err := jsString(selector)
	if err != nil {
		return "", err
	}
	val, err := jsString(value)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("(() => {")
	b.WriteString("const el = document.querySelector(" + sel + ");")
	b.WriteString("if (!el) { return false; }")
	b.WriteString("el.value = " + val + ";")
	b.WriteString("el.dispatchEvent(new Event('input', { bubbles: true }));")
	b.WriteString("el.dispatchEvent(new Event('change', { bubbles: true }));")
	b.WriteString("return true;")
	b.WriteString("})()")
	return b.String(), nil
}

func textsScript(selector string) (string, error) {
	sel, err := jsString(selector)
	if err != nil {
		return "", err
	}
	return "Array.from(document.querySelectorAll(" + sel + "), el => el.textContent || '')", nil
}
