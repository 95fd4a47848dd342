package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/baguioroutes/roadadvisor/pkg/concurrent"
	http_server "github.com/baguioroutes/roadadvisor/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

/*
handleWebsocket. accept loop of the device advisory stream: phones keep a
single long-lived connection open, stream position fixes over it and
receive presentation events (status text, polylines, camera, speech) back.

use epoll api to reduce per-connection goroutine stacks,
ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
*/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	errChan chan error,
) {
	var err error

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("advisory stream websocket run on port %d", config.WebsocketPort))

	acceptDesc := netpoll.Must(netpoll.HandleListener(
		ln, netpoll.EventRead|netpoll.EventOneShot,
	))

	api.poller, err = netpoll.New(nil)
	if err != nil {
		errChan <- err
		return
	}

	api.pool = concurrent.NewPool(15, 10)
	api.pool.Spawn(10)

	// accept is a channel to signal about next incoming connection Accept()
	// results.
	accept := make(chan error, 1)

	api.poller.Start(acceptDesc, func(conn netpoll.Event) {
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(1000*time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			if delay, retry := retryAcceptDelay(err); retry {
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else {
				api.log.Sugar().Fatalf("accept error: %v", err)
			}
		}

	})

	<-ctx.Done()

	ln.Close()

	api.hub.RemoveAllUser()
	api.poller.Stop(acceptDesc)

	api.pool.Close()

	api.log.Info("websocket server stopped")
}

// retryAcceptDelay reports whether the accept loop should cool down and
// retry after err. A saturated pool or a transient accept timeout cools
// the listener down briefly instead of spinning; anything else is
// unrecoverable.
func retryAcceptDelay(err error) (time.Duration, bool) {
	if errors.Is(err, concurrent.ErrScheduleTimeout) {
		return 5 * time.Millisecond, true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 5 * time.Millisecond, true
	}
	return 0, false
}

func (api *API) handle(conn net.Conn) {

	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection name ", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection name ", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc := netpoll.Must(netpoll.HandleRead(conn))

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			api.log.Info("user disconnected from websocket server")

			api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		// spawn goroutine from goroutine pool to handle the frame
		api.pool.Schedule(func() {
			err := user.HandleAdvisoryStream()
			if err != nil {
				api.log.Error("error handling advisory stream", zap.Error(err))
				// remove user conn file descriptor from epoll interest
				// list & remove from hub
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})

	})
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
