package trigger

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/paulalicante/screenshot-tool/capture"
)

// ErrCaptureCancelled reports that the resident's user dismissed the capture.
var ErrCaptureCancelled = errors.New("capture cancelled by resident")

type tcpClient struct{}

func newTcpClient() Client { return &tcpClient{} }

func (c *tcpClient) TryCapture(ctx context.Context, mode capture.Mode) (bool, string, error) {
	deadline := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			deadline = d
		}
	}
	// scan configured range for resident using PING then request
	start, end := getPortRange()
	for port := start; port <= end; port++ {
		addr := net.JoinHostPort(residentHost, strconv.Itoa(port))
		if !ping(addr, deadline) {
			continue
		}
		// connect for request
		conn, err := net.DialTimeout("tcp", addr, deadline)
		if err != nil {
			continue
		}
		w := bufio.NewWriter(conn)
		if _, err := w.WriteString(strings.ToUpper(string(mode)) + "\n"); err != nil {
			conn.Close()
			return true, "", err
		}
		if err := w.Flush(); err != nil {
			conn.Close()
			return true, "", err
		}
		br := bufio.NewReader(conn)
		status, err := br.ReadString('\n')
		if err != nil {
			conn.Close()
			return true, "", err
		}
		switch status {
		case "SAVED\n":
			b, _ := io.ReadAll(br)
			conn.Close()
			return true, string(b), nil
		case "CANCELLED\n":
			conn.Close()
			return true, "", ErrCaptureCancelled
		case "ERROR\n":
			msg, _ := io.ReadAll(br)
			conn.Close()
			return true, "", errors.New(string(msg))
		}
		conn.Close()
	}
	return false, "", nil
}

func ping(addr string, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))
	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(pingRequest); err != nil {
		return false
	}
	if err := w.Flush(); err != nil {
		return false
	}
	br := bufio.NewReader(conn)
	resp, err := br.ReadString('\n')
	return err == nil && resp == pongResponse
}
