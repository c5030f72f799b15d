package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Server speaks the line protocol: one command per line, one reply line
// per command ("OK", a value, or "ERR: ...").
type Server struct {
	ctl *Controller
	l   net.Listener
}

func NewServer(port int, ctl *Controller) (*Server, error) {
	l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	log.Infof("Listening on port %d", port)
	return &Server{ctl, l}, nil
}

// execute runs one command and returns the reply, without newline.
func (s *Server) execute(ctx context.Context, cmd, parms string) (string, error) {
	switch cmd {
	case "MODE":
		if parms == "" {
			return s.ctl.Do(ctx, func() (string, error) {
				return s.ctl.mode(), nil
			})
		}
		return s.ctl.Do(ctx, func() (string, error) {
			return "OK", s.ctl.setMode(parms)
		})
	case "MODES":
		return s.ctl.Do(ctx, func() (string, error) {
			return strings.Join(s.ctl.d.Modes(), " "), nil
		})
	case "PALETTE":
		if parms == "" {
			return s.ctl.Do(ctx, func() (string, error) {
				return s.ctl.report().Palette, nil
			})
		}
		return s.ctl.Do(ctx, func() (string, error) {
			return "OK", s.ctl.setPalette(parms)
		})
	case "STATUS":
		if parms == "" {
			return s.ctl.Do(ctx, func() (string, error) {
				return s.ctl.status.String(), nil
			})
		}
		return s.ctl.Do(ctx, func() (string, error) {
			return "OK", s.ctl.setStatus(parms)
		})
	case "BRIGHTNESS":
		if parms == "" {
			return s.ctl.Do(ctx, func() (string, error) {
				return strconv.Itoa(s.ctl.pa.Brightness()), nil
			})
		}
		b, err := strconv.Atoi(parms)
		if err != nil {
			return "", fmt.Errorf("error parsing brightness: %w", err)
		}
		return s.ctl.Do(ctx, func() (string, error) {
			return "OK", s.ctl.setBrightness(b)
		})
	case "COLOR", "COLOUR":
		if parms == "" {
			return s.ctl.Do(ctx, func() (string, error) {
				return s.ctl.color(), nil
			})
		}
		p, err := parseColor(parms)
		if err != nil {
			return "", fmt.Errorf("error parsing color: %w", err)
		}
		return s.ctl.Do(ctx, func() (string, error) {
			return "OK", s.ctl.setColor(p)
		})
	case "GET":
		return s.ctl.Do(ctx, func() (string, error) {
			if s.ctl.frameLit() {
				return "1", nil
			}
			return "0", nil
		})
	}
	return "", fmt.Errorf("unknown command: %s", cmd)
}

func (s *Server) handleConnection(ctx context.Context, c net.Conn) {
	log.Infof("Handling connection from %v", c.RemoteAddr())
	defer c.Close()
	r := bufio.NewReader(c)
	w := bufio.NewWriter(c)
	for {
		l, err := r.ReadString('\n')
		if err == io.EOF {
			log.Debugf("EOF for connection %v", c.RemoteAddr())
			return
		}
		if err != nil {
			log.Warnf("Error reading string for connection %v: %v", c.RemoteAddr(), err)
			return
		}
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		log.Debugf("Got line '%s'", l)
		t := strings.SplitN(l, " ", 2)
		cmd := strings.ToUpper(t[0])
		parms := ""
		if len(t) > 1 {
			parms = strings.TrimSpace(t[1])
		}
		if cmd == "QUIT" {
			return
		}
		reply, cerr := s.execute(ctx, cmd, parms)
		if cerr != nil {
			log.Warnf("Command %s failed: %v", cmd, cerr)
			reply = "ERR: " + cerr.Error()
		}
		w.WriteString(reply + "\n")
		err = w.Flush()
		if err != nil {
			log.Warnf("Error writing reply: %v", err)
			return
		}
		if errors.Is(cerr, errStopped) {
			return
		}
	}
}

// Serve accepts connections until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.l.Close() // Ignore error
	}()
	for {
		conn, err := s.l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Warnf("Error accepting connection: %v", err)
			continue
		}
		go s.handleConnection(ctx, conn)
	}
}
