package http1

import (
	"fmt"
	"time"

	"github.com/dchest/uniuri"
	"github.com/frankiez/gpio-httpd/config"
	"github.com/frankiez/gpio-httpd/http"
	"github.com/frankiez/gpio-httpd/http/status"
	"github.com/frankiez/gpio-httpd/router"
	"github.com/frankiez/gpio-httpd/transport"
	"github.com/rs/zerolog"
)

const connIDLength = 8

// Suit serves a single connection: it frames, parses, routes and answers exactly one
// request, and closes the connection afterwards.
type Suit struct {
	router     router.Router
	client     transport.Client
	framer     *Framer
	parser     *Parser
	serializer *serializer
	log        zerolog.Logger
}

func New(cfg *config.Config, r router.Router, client transport.Client, log zerolog.Logger) *Suit {
	return &Suit{
		router:     r,
		client:     client,
		framer:     NewFramer(client, cfg),
		parser:     NewParser(cfg.Request),
		serializer: newSerializer(cfg, client),
		log: log.With().
			Str("conn", uniuri.NewLen(connIDLength)).
			Stringer("remote", client.Remote()).
			Logger(),
	}
}

// Serve answers the request and closes the connection. Every failure before the response
// is written turns into an error response, so the client always gets a valid reply, if it
// is still there to read it. The connection is closed exactly once on every path.
func (s *Suit) Serve() {
	var writing bool

	defer s.close()
	defer func() {
		if p := recover(); p != nil {
			s.log.Error().Interface("panic", p).Msg("connection handler panicked")

			if !writing {
				_, _, _ = s.serializer.Write(http.NewResponse().Error(status.ErrInternalServerError))
			}
		}
	}()

	start := time.Now()
	request, response := s.handle()
	writing = true
	code, written, err := s.serializer.Write(response)

	event := s.log.Info()
	if err != nil {
		event = s.log.Warn().Err(err)
	}

	event.
		Str("method", request.Token).
		Str("path", request.Path).
		Uint16("status", uint16(code)).
		Int64("bytes", written).
		Dur("duration", time.Since(start)).
		Msg("served")
}

func (s *Suit) handle() (*http.Request, *http.Response) {
	head, err := s.framer.Head()
	if err != nil {
		request := http.NewRequest()
		request.Remote = s.client.Remote()

		return request, s.onError(request, err)
	}

	request, err := s.parser.Parse(head)
	request.Remote = s.client.Remote()
	if err != nil {
		return request, s.onError(request, err)
	}

	if request.ContentLength > 0 {
		if request.Body, err = s.framer.Body(request.ContentLength); err != nil {
			return request, s.onError(request, err)
		}
	}

	return request, s.onRequest(request)
}

func (s *Suit) onRequest(request *http.Request) (response *http.Response) {
	defer s.recoverHandler(request, &response)
	return notNil(request, s.router.OnRequest(request))
}

func (s *Suit) onError(request *http.Request, err error) (response *http.Response) {
	s.log.Debug().Err(err).Msg("request failed")

	defer s.recoverHandler(request, &response)
	return notNil(request, s.router.OnError(request, err))
}

// recoverHandler turns a panic in the router into 500 Internal Server Error.
func (s *Suit) recoverHandler(request *http.Request, response **http.Response) {
	if p := recover(); p != nil {
		s.log.Error().
			Str("method", request.Token).
			Str("path", request.Path).
			Err(fmt.Errorf("%v", p)).
			Msg("router panicked")

		*response = http.Error(request, status.ErrInternalServerError)
	}
}

func (s *Suit) close() {
	s.framer.Reset()

	if err := s.client.Close(); err != nil {
		s.log.Debug().Err(err).Msg("closing connection")
	}
}

func notNil(request *http.Request, response *http.Response) *http.Response {
	if response != nil {
		return response
	}

	return http.Respond(request)
}
