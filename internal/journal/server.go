package journal

import (
	"errors"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/mark3labs/listwiz/internal/logger"
)

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// startServer runs an embedded NATS server with JetStream and no network
// listener. dir holds JetStream bookkeeping; streams themselves live in memory.
func startServer(dir string) (*server.Server, error) {
	logger.Debug("Starting embedded NATS server with store dir: %s", dir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dir,
		DontListen: true,
		NoSigs:     true,
	})
	if err != nil {
		return nil, err
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}
	logger.Debug("NATS server ready for connections")
	return ns, nil
}

func connectInProcess(ns *server.Server) (*nats.Conn, error) {
	return nats.Connect("", nats.InProcessServer(ns), nats.Name("listwiz-journal"))
}

// shutdown drains the connection, then stops the server. Both steps time out.
func shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drained := make(chan error, 1)
		go func() { drained <- nc.Drain() }()

		select {
		case err := <-drained:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(drainTimeout):
			logger.Warn("NATS drain timed out after %s, forcing close", drainTimeout)
			nc.Close()
		}
	}

	if ns == nil {
		return nil
	}
	ns.Shutdown()
	done := make(chan struct{})
	go func() {
		ns.WaitForShutdown()
		close(done)
	}()
	select {
	case <-done:
		logger.Debug("NATS server shut down cleanly")
		return nil
	case <-time.After(shutdownTimeout):
		logger.Error("NATS server shutdown timed out after %s", shutdownTimeout)
		return errors.New("nats server shutdown timed out")
	}
}
