/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package message

import "sync"

// Actor represents a computation unit for actor pattern: https://www.brianstorti.com/the-actor-model/
type Actor interface {
	// Act is to act the callback function when received the e event with the instance of Actor.
	Act(e *Event, callback func(m interface{}))
}

// ActorContext is the context of the Actors.  Each started Actor owns one
// mailbox goroutine, so every event sent to it is handled strictly in send
// order.
type ActorContext struct {
	mtx sync.RWMutex

	// mailboxes are instruction channels for sending message to the Actors.
	mailboxes map[Actor]chan *instruction
}

type instruction struct {
	e        *Event
	callback func(m interface{})
}

// EventTopic represents the subscription topic
type EventTopic int

// Event has a topic and a kind of message that needs to be processed by actors.
type Event struct {
	Topic EventTopic
	Extra interface{}
}

// NewEvent returns a new instance of Event.
func NewEvent(t EventTopic, e interface{}) *Event {
	return &Event{Topic: t, Extra: e}
}

// NewActorContext makes a new instance of ActorContext.
func NewActorContext() *ActorContext {
	return &ActorContext{mailboxes: make(map[Actor]chan *instruction)}
}

// StartActor starts the process of the given Actor.
func (ctx *ActorContext) StartActor(a Actor) {
	ctx.mtx.Lock()
	m, started := ctx.mailboxes[a]
	if !started {
		m = make(chan *instruction)
		ctx.mailboxes[a] = m
	}
	ctx.mtx.Unlock()

	if !started {
		// Listen to the relevant mailbox and delegate to the given Actor.
		go startProc(a, m)
	}
}

// Send sends instruction to the given Actor.
func (ctx *ActorContext) Send(a Actor, e *Event, callback func(m interface{})) {
	ctx.mtx.RLock()
	m := ctx.mailboxes[a]
	ctx.mtx.RUnlock()
	m <- &instruction{e: e, callback: callback}
}

// SendAndWait sends the given Event to the given Actor and wait until getting response.
func (ctx *ActorContext) SendAndWait(a Actor, e *Event) interface{} {
	c := make(chan interface{}, 1)
	ctx.Send(a, e, func(r interface{}) { c <- r })
	return <-c
}

// ActorStarted checks whether the given Actor is started.
func (ctx *ActorContext) ActorStarted(a Actor) bool {
	ctx.mtx.RLock()
	defer ctx.mtx.RUnlock()
	_, ok := ctx.mailboxes[a]
	return ok
}

// startProc runs the listening loop for the given Actor.
//
// When received message from mailbox, the given Actor will Act. Otherwise block the process.
func startProc(a Actor, mailbox chan *instruction) {
	for mail := range mailbox {
		a.Act(mail.e, mail.callback)
	}
}
