package dbus

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/toastui/internal/toast"
)

// Client talks to a running toastui daemon.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Event is a signal received from the daemon.
type Event struct {
	// Name is "Closed" or "Clicked".
	Name string `json:"event" yaml:"event"`
	ID   string `json:"id" yaml:"id"`
	// Reason is set for Closed.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Dial opens a private session bus connection to the daemon.
func Dial() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(BusName, ObjectPath),
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(ctx context.Context, method string, args ...any) *dbus.Call {
	return c.obj.CallWithContext(ctx, Interface+"."+method, 0, args...)
}

// Notify shows a toast and returns its id. An empty id means the daemon did
// not show anything.
func (c *Client) Notify(ctx context.Context, message string, p toast.Partial) (string, error) {
	var id string
	if err := c.call(ctx, "Notify", message, EncodeOptions(p)).Store(&id); err != nil {
		return "", fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

// Dismiss closes a toast by id.
func (c *Client) Dismiss(ctx context.Context, id string) error {
	if err := c.call(ctx, "Dismiss", id).Err; err != nil {
		return fmt.Errorf("dismiss %s: %w", id, err)
	}
	return nil
}

// CloseAll closes every visible toast.
func (c *Client) CloseAll(ctx context.Context) error {
	if err := c.call(ctx, "CloseAll").Err; err != nil {
		return fmt.Errorf("close all: %w", err)
	}
	return nil
}

// SetDefaults merges p into the daemon's defaults.
func (c *Client) SetDefaults(ctx context.Context, p toast.Partial) error {
	if err := c.call(ctx, "SetDefaults", EncodeOptions(p)).Err; err != nil {
		return fmt.Errorf("set defaults: %w", err)
	}
	return nil
}

// GetDefaults returns the daemon's defaults.
func (c *Client) GetDefaults(ctx context.Context) (toast.Config, error) {
	var opts map[string]dbus.Variant
	if err := c.call(ctx, "GetDefaults").Store(&opts); err != nil {
		return toast.Config{}, fmt.Errorf("get defaults: %w", err)
	}
	return DecodeConfig(opts), nil
}

// Destroy tears down every toast on the daemon.
func (c *Client) Destroy(ctx context.Context) error {
	if err := c.call(ctx, "Destroy").Err; err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	return nil
}

// Version returns the daemon's library version.
func (c *Client) Version(ctx context.Context) (string, error) {
	var v string
	if err := c.call(ctx, "Version").Store(&v); err != nil {
		return "", fmt.Errorf("version: %w", err)
	}
	return v, nil
}

// Snapshot returns the daemon's rendered document.
func (c *Client) Snapshot(ctx context.Context) (string, error) {
	var out string
	if err := c.call(ctx, "Snapshot").Store(&out); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return out, nil
}

// Subscribe delivers Closed and Clicked signals until ctx is done.
func (c *Client) Subscribe(ctx context.Context) (<-chan Event, error) {
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(ObjectPath),
		dbus.WithMatchInterface(Interface),
	); err != nil {
		return nil, fmt.Errorf("failed to add signal match: %w", err)
	}

	raw := make(chan *dbus.Signal, 16)
	c.conn.Signal(raw)

	out := make(chan Event)
	go func() {
		defer close(out)
		defer c.conn.RemoveSignal(raw)
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-raw:
				if !ok {
					return
				}
				ev, ok := eventFromSignal(sig)
				if !ok {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func eventFromSignal(sig *dbus.Signal) (Event, bool) {
	if sig == nil || sig.Path != ObjectPath {
		return Event{}, false
	}
	switch sig.Name {
	case SignalClosed:
		if len(sig.Body) < 2 {
			return Event{}, false
		}
		id, _ := sig.Body[0].(string)
		reason, _ := sig.Body[1].(string)
		return Event{Name: "Closed", ID: id, Reason: reason}, true
	case SignalClicked:
		if len(sig.Body) < 1 {
			return Event{}, false
		}
		id, _ := sig.Body[0].(string)
		return Event{Name: "Clicked", ID: id}, true
	}
	return Event{}, false
}
