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

package sentryhook

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

const flushTimeout = 2 * time.Second

var levelMap = map[log.Level]sentry.Level{
	log.TraceLevel: sentry.LevelDebug,
	log.DebugLevel: sentry.LevelDebug,
	log.InfoLevel:  sentry.LevelInfo,
	log.WarnLevel:  sentry.LevelWarning,
	log.ErrorLevel: sentry.LevelError,
	log.FatalLevel: sentry.LevelFatal,
	log.PanicLevel: sentry.LevelFatal,
}

// Option configures a Hook.
type Option func(h *Hook)

// Hook forwards logrus entries to sentry. Log fields named as tag fields become
// searchable event tags, and fingerprint fields decide how events are grouped.
type Hook struct {
	hub               *sentry.Hub
	levels            []log.Level
	tags              map[string]string
	tagFields         map[string]bool
	fingerprintFields []string
}

// New creates a new logrus hook reporting entries at the given levels.
func New(levels []log.Level, options ...Option) Hook {
	h := Hook{
		levels:    levels,
		hub:       sentry.CurrentHub(),
		tagFields: map[string]bool{},
	}
	for _, option := range options {
		option(&h)
	}
	return h
}

// WithTags adds tags to every event.
func WithTags(tags map[string]string) Option {
	return func(h *Hook) {
		h.tags = tags
	}
}

// WithHub sends events to the given hub instead of the current one.
func WithHub(hub *sentry.Hub) Option {
	return func(h *Hook) {
		h.hub = hub
	}
}

// WithTagFields reports the named log fields as event tags instead of extra data.
func WithTagFields(fields ...string) Option {
	return func(h *Hook) {
		for _, f := range fields {
			h.tagFields[f] = true
		}
	}
}

// WithFingerprint groups events by the log message and the values of the named fields.
// Entries carrying none of the fields keep sentry's default grouping.
func WithFingerprint(fields ...string) Option {
	return func(h *Hook) {
		h.fingerprintFields = fields
	}
}

// Levels returns the valid log levels to hook.
func (hook Hook) Levels() []log.Level {
	return hook.levels
}

// Fire sends an event to sentry.
func (hook Hook) Fire(entry *log.Entry) error {
	hook.hub.CaptureEvent(hook.eventFor(entry))
	hook.hub.Flush(flushTimeout)
	return nil
}

func (hook Hook) eventFor(entry *log.Entry) *sentry.Event {
	event := sentry.NewEvent()
	event.Level = levelMap[entry.Level]
	event.Message = entry.Message
	for k, v := range hook.tags {
		event.Tags[k] = v
	}

	for k, v := range entry.Data {
		switch {
		case k == log.ErrorKey:
			// Reported as the exception.
		case hook.tagFields[k]:
			event.Tags[k] = fmt.Sprint(v)
		default:
			event.Extra[k] = v
		}
	}

	if fp := hook.fingerprint(entry); fp != nil {
		event.Fingerprint = fp
	}
	if err, ok := entry.Data[log.ErrorKey].(error); ok {
		event.Exception = hook.exceptions(err)
	}
	return event
}

func (hook Hook) fingerprint(entry *log.Entry) []string {
	var values []string
	for _, f := range hook.fingerprintFields {
		if v, ok := entry.Data[f]; ok {
			values = append(values, fmt.Sprintf("%s=%v", f, v))
		}
	}
	if len(values) == 0 {
		return nil
	}
	return append([]string{entry.Message}, values...)
}

// exceptions reports the error chain, outermost error last as sentry expects.
func (hook Hook) exceptions(err error) []sentry.Exception {
	attachStack := false
	if client := hook.hub.Client(); client != nil {
		attachStack = client.Options().AttachStacktrace
	}

	var chain []sentry.Exception
	for e := err; e != nil; e = errors.Unwrap(e) {
		exception := sentry.Exception{
			Type:  reflect.TypeOf(e).String(),
			Value: e.Error(),
		}
		if attachStack {
			exception.Stacktrace = sentry.ExtractStacktrace(e)
		}
		chain = append([]sentry.Exception{exception}, chain...)
	}
	return chain
}
