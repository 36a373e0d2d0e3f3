package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/toastui/internal/toast"
)

// Signal names.
const (
	SignalClosed  = Interface + ".Closed"
	SignalClicked = Interface + ".Clicked"
)

// EmitClosed emits the Closed signal.
func (s *Server) EmitClosed(id string, reason toast.CloseReason) error {
	conn := s.connection()
	if conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}
	if err := conn.Emit(ObjectPath, SignalClosed, id, reason.String()); err != nil {
		return fmt.Errorf("failed to emit Closed signal: %w", err)
	}
	s.logger.Debug("emitted Closed signal", "id", id, "reason", reason)
	return nil
}

// EmitClicked emits the Clicked signal.
func (s *Server) EmitClicked(id string) error {
	conn := s.connection()
	if conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}
	if err := conn.Emit(ObjectPath, SignalClicked, id); err != nil {
		return fmt.Errorf("failed to emit Clicked signal: %w", err)
	}
	s.logger.Debug("emitted Clicked signal", "id", id)
	return nil
}

func (s *Server) handleRemoved(t *toast.Toast) {
	if s.connection() == nil {
		return
	}
	if err := s.EmitClosed(t.ID(), t.Reason()); err != nil {
		s.logger.Warn("failed to emit Closed signal", "id", t.ID(), "error", err)
	}
}

func (s *Server) emitClicked(id string) {
	if s.connection() == nil {
		return
	}
	if err := s.EmitClicked(id); err != nil {
		s.logger.Warn("failed to emit Clicked signal", "id", id, "error", err)
	}
}

func (s *Server) connection() *dbus.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}
