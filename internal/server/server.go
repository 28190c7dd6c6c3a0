package server

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/quic-go/quic-go/http3"
)

// HTTP3Server wraps the http3.Server lifecycle.
type HTTP3Server struct {
	srv  *http3.Server
	pc   net.PacketConn
	addr string
	done chan struct{}
}

// NewHTTP3Server creates a server bound to addr with the given TLS config
// and handler.
func NewHTTP3Server(addr string, tlsCfg *tls.Config, h http.Handler) *HTTP3Server {
	return &HTTP3Server{
		srv:  &http3.Server{Addr: addr, TLSConfig: http3.ConfigureTLSConfig(tlsCfg), Handler: h},
		addr: addr,
	}
}

// Start begins serving on a UDP socket and returns the bound address, so
// an addr ending in ":0" picks a free port.
func (s *HTTP3Server) Start() (string, error) {
	pc, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return "", err
	}
	s.pc = pc
	s.done = make(chan struct{})
	go func() {
		_ = s.srv.Serve(pc)
		close(s.done)
	}()
	return pc.LocalAddr().String(), nil
}

// Stop closes the socket and waits briefly for Serve to return.
func (s *HTTP3Server) Stop() error {
	if s.pc == nil {
		return nil
	}
	err := s.srv.Close()
	_ = s.pc.Close()
	select {
	case <-s.done:
	case <-time.After(time.Second):
	}
	return err
}

// HTTP3Client returns an http.Client using the HTTP/3 round tripper.
func HTTP3Client(tlsCfg *tls.Config, timeout time.Duration) *http.Client {
	return &http.Client{Transport: &http3.Transport{TLSClientConfig: tlsCfg}, Timeout: timeout}
}

// CloseClient releases the QUIC connections held by an HTTP3Client.
func CloseClient(c *http.Client) {
	if tr, ok := c.Transport.(*http3.Transport); ok {
		_ = tr.Close()
	}
}

// Server runs the handler on HTTP/3 and, when HTTP1Addr is set, on a
// plain HTTP/1.1 listener as well.
type Server struct {
	Addr      string
	HTTP1Addr string
	TLS       *tls.Config
	Handler   http.Handler

	h3 *HTTP3Server
	h1 *http.Server
	ln net.Listener
}

// Start opens the listeners and returns their bound addresses. The
// HTTP/1.1 address is empty when that listener is disabled.
func (s *Server) Start() (h3Addr, h1Addr string, err error) {
	s.h3 = NewHTTP3Server(s.Addr, s.TLS, s.Handler)
	if h3Addr, err = s.h3.Start(); err != nil {
		return "", "", err
	}

	if s.HTTP1Addr != "" {
		if s.ln, err = net.Listen("tcp", s.HTTP1Addr); err != nil {
			_ = s.h3.Stop()
			return "", "", err
		}
		s.h1 = &http.Server{Handler: s.Handler, ReadHeaderTimeout: 10 * time.Second}
		h1Addr = s.ln.Addr().String()
	}
	return h3Addr, h1Addr, nil
}

// Wait serves HTTP/1.1, if enabled, until ctx is done and then shuts
// both listeners down.
func (s *Server) Wait(ctx context.Context) error {
	errc := make(chan error, 1)
	if s.h1 != nil {
		go func() { errc <- s.h1.Serve(s.ln) }()
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}
	return errors.Join(err, s.Shutdown())
}

// Shutdown stops both listeners.
func (s *Server) Shutdown() error {
	var errs []error
	if s.h1 != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.h1.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		s.h1 = nil
	}
	if s.h3 != nil {
		if err := s.h3.Stop(); err != nil {
			errs = append(errs, err)
		}
		s.h3 = nil
	}
	return errors.Join(errs...)
}
