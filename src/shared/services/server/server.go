/*
 * Copyright 2018- The Pixie Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/numetrify/numetrify/src/shared/services"
	"github.com/numetrify/numetrify/src/shared/services/env"
)

// Server is the HTTP server component shared by all services. It serves HTTP/1.1 and
// cleartext HTTP/2 on one port and handles the logging and CORS middleware.
type Server struct {
	wg         *sync.WaitGroup
	env        env.Env
	httpServer *http.Server
}

// NewServer creates a new Server listening on the configured http_port.
func NewServer(env env.Env, httpHandler http.Handler) *Server {
	wrappedHandler := services.HTTPLoggingMiddleware(services.WithCORS(httpHandler))
	return &Server{
		wg:  &sync.WaitGroup{},
		env: env,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", viper.GetInt("http_port")),
			Handler:           h2c.NewHandler(wrappedHandler, &http2.Server{}),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}
}

// Serve accepts connections on lis until the server is stopped.
func (s *Server) Serve(lis net.Listener) error {
	s.wg.Add(1)
	defer s.wg.Done()

	log.WithField("addr", lis.Addr().String()).
		WithField("service", s.env.ServiceName()).
		Info("Starting HTTP server")
	err := s.httpServer.Serve(lis)
	// Check for graceful termination.
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("HTTP server stopped.")
	return nil
}

// Start runs the server in a go routine. It returns immediately.
// On error in starting the server the program will terminate.
func (s *Server) Start() {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		log.WithError(err).Fatal("Failed to listen")
	}
	go func() {
		if err := s.Serve(lis); err != nil {
			log.WithError(err).Fatal("Failed to run HTTP server")
		}
	}()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	log.Info("Stopping server.")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to do a graceful shutdown of HTTP server.")
	}
	s.wg.Wait()
	log.Info("Shutdown HTTP server complete.")
}

// StopOnInterrupt gracefully shuts down when ctrl-c is pressed or termination signal is received.
func (s *Server) StopOnInterrupt() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	s.Stop()
}
