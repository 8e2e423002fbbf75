package controller

import (
	"context"
	"log"
	"time"

	"github.com/zllovesuki/KeybowManager/keymap"
	"github.com/zllovesuki/KeybowManager/system/keypad"

	"github.com/pkg/errors"
	suture "github.com/thejerf/suture/v4"
)

// Config contains the configurations for the controller
type Config struct {
	Keypad   *keypad.Keypad
	Keyboard Keyboard
	Consumer ConsumerControl
	Keymap   keymap.Keymap

	// Step is added to the animation phase every iteration
	Step int64
	// FrameInterval, when positive, is slept once per iteration. Zero polls as fast as possible.
	FrameInterval time.Duration

	// ErrorCh receives the error that stopped the loop when running under a supervisor
	ErrorCh chan<- error
}

// Controller owns the polling loop: key events in, HID reports and LED frames out
type Controller struct {
	Config

	dispatcher *Dispatcher
	animator   *Animator
}

var _ suture.Service = &Controller{}

// New validates the config and returns a Controller
func New(conf Config) (*Controller, error) {
	if conf.Keypad == nil {
		return nil, errors.New("[controller] nil Keypad is invalid")
	}
	if conf.Keyboard == nil {
		return nil, errors.New("[controller] nil Keyboard is invalid")
	}
	if conf.Consumer == nil {
		return nil, errors.New("[controller] nil Consumer is invalid")
	}
	if conf.FrameInterval < 0 {
		return nil, errors.New("[controller] negative frame interval is invalid")
	}
	if err := conf.Keymap.Validate(); err != nil {
		return nil, errors.Wrap(err, "[controller] invalid keymap")
	}

	animator := NewAnimator(conf.Step)
	conf.Step = animator.Step

	return &Controller{
		Config:   conf,
		animator: animator,
		dispatcher: &Dispatcher{
			Keymap:   conf.Keymap,
			Keyboard: conf.Keyboard,
			Consumer: conf.Consumer,
			Idle:     animator.Idle,
		},
	}, nil
}

func (c *Controller) initialize() {
	for _, k := range c.Config.Keypad.Keys() {
		c.Config.Keypad.OnPress(k.Number(), c.dispatcher.Press)
		c.Config.Keypad.OnRelease(k.Number(), c.dispatcher.Release)
	}
}

// Tick runs one iteration of the loop: poll, advance the phase, paint the keys
func (c *Controller) Tick() error {
	if err := c.Config.Keypad.Update(); err != nil {
		return err
	}
	c.animator.Advance()
	c.animator.Render(c.Config.Keypad.Keys())
	return nil
}

// Run will start the controller loop and blocked until context cancel, or an error has occurred
func (c *Controller) Run(haltCtx context.Context) error {
	log.Println("[controller] Starting controller loop")

	c.initialize()

	var frame *time.Ticker
	if c.Config.FrameInterval > 0 {
		frame = time.NewTicker(c.Config.FrameInterval)
		defer frame.Stop()
	}

	for {
		select {
		case <-haltCtx.Done():
			log.Println("[controller] exiting controller loop")
			return nil
		default:
		}

		if err := c.Tick(); err != nil {
			return errors.Wrap(err, "[controller] unrecoverable error in controller loop")
		}

		if frame != nil {
			select {
			case <-frame.C:
			case <-haltCtx.Done():
			}
		}
	}
}

// Serve satisfies suture.Service. The controller is never restarted: a failure
// is handed to ErrorCh and the supervisor tree is torn down.
func (c *Controller) Serve(haltCtx context.Context) error {
	err := c.Run(haltCtx)
	if err == nil {
		return nil
	}
	log.Printf("[controller] %+v\n", err)
	if c.Config.ErrorCh != nil {
		select {
		case c.Config.ErrorCh <- err:
		default:
		}
	}
	return suture.ErrTerminateSupervisorTree
}

func (c *Controller) String() string {
	return "Controller"
}
