package main

import (
	"testing"

	"github.com/tline/triad/synth"
)

func testSession() (*session, *synth.Receiver) {
	sender, recv := synth.NewControlChannel(8)
	return &session{sender: sender, cfg: synth.DefaultConfig()}, recv
}

func TestEvalSendsMessages(t *testing.T) {
	sess, recv := testSession()

	lines := []string{"voice 1", "toggle 1", "freq 440", "vol 0.5", "pan 0.25"}
	for _, line := range lines {
		if err := sess.eval(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}

	want := []synth.Message{
		synth.SelectVoice(1),
		synth.ToggleVoice(1),
		synth.SetFrequency(440),
		synth.SetVolume(0.5),
		synth.SetPan(0.25),
	}
	for n, w := range want {
		got, ok := recv.Pop()
		if !ok {
			t.Fatalf("message %d missing", n)
		}
		if w != got {
			t.Errorf("message %d: want %+v, got %+v", n, w, got)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	sess, _ := testSession()

	if err := sess.eval("warble 3"); err == nil {
		t.Errorf("want error for unknown command")
	}
	if err := sess.eval("freq"); err == nil {
		t.Errorf("want arity error")
	}
	if err := sess.eval("freq 1 2"); err == nil {
		t.Errorf("want arity error")
	}
	if err := sess.eval("freq fast"); err == nil {
		t.Errorf("want parse error")
	}
	if err := sess.eval(""); err != nil {
		t.Errorf("blank line should be a no-op, got %v", err)
	}
}

func TestEvalQueueFull(t *testing.T) {
	sess, _ := testSession()
	for n := 0; n < 8; n++ {
		if err := sess.eval("toggle 0"); err != nil {
			t.Fatalf("push %d: %v", n, err)
		}
	}
	// The queue is full and nothing is draining it: the drop is reported to
	// the user, not retried.
	if err := sess.eval("toggle 0"); err == nil {
		t.Errorf("want a queue-full error")
	}
}

func TestEvalWithoutSender(t *testing.T) {
	sess, _ := testSession()
	sess.sender = nil
	if err := sess.eval("freq 440"); err == nil {
		t.Errorf("want error when another producer owns the controls")
	}
}
