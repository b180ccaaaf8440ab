package command

import (
	"context"
	"strings"
	"testing"

	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/internal/lookup"
	"github.com/bft-labs/i2p/internal/registry"
)

func newDispatcher(t *testing.T, prefix string) *Dispatcher {
	t.Helper()
	r := registry.New()
	err := r.Load(domain.SourceDocument{
		ClientBound: []domain.Packet{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}},
		ServerBound: []domain.Packet{{ID: "3", Name: "C"}},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return NewDispatcher(lookup.NewService(r), prefix, nil)
}

func TestHandle_Lookup(t *testing.T) {
	d := newDispatcher(t, "")

	tests := []struct {
		name    string
		msg     string
		want    string
		wantErr bool
	}{
		{"server-bound", "~i2p 3 c2s", "Packet ID:    3\nPacket Name:  C\nPacket Bound: C2S", false},
		{"client-bound upper-case token", "~i2p 1 S2C", "Packet ID:    1\nPacket Name:  A\nPacket Bound: S2C", false},
		{"extra whitespace", "  ~i2p   2   s2c  ", "Packet ID:    2\nPacket Name:  B\nPacket Bound: S2C", false},
		{"case-insensitive command", "~I2P 3 c2s", "Packet ID:    3\nPacket Name:  C\nPacket Bound: C2S", false},
		{"not found", "~i2p 1 c2s", "An error occurred:\n" + MsgNotFound, true},
		{"invalid id", "~i2p one s2c", "An error occurred:\n" + MsgInvalidID, true},
		{"invalid id without bound", "~i2p one", "An error occurred:\n" + MsgInvalidID, true},
		{"invalid bound", "~i2p 1 up", "An error occurred:\n" + MsgInvalidDirection, true},
		{"missing args", "~i2p", "An error occurred:\nUsage: ~i2p <id> <bound>", true},
		{"missing bound", "~i2p 1", "An error occurred:\nUsage: ~i2p <id> <bound>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, ok := d.Handle(context.Background(), tt.msg)
			if !ok {
				t.Fatalf("Handle(%q) not handled", tt.msg)
			}
			if reply.Error != tt.wantErr {
				t.Errorf("Handle(%q).Error = %v, want %v", tt.msg, reply.Error, tt.wantErr)
			}
			if reply.Text != tt.want {
				t.Errorf("Handle(%q).Text = %q, want %q", tt.msg, reply.Text, tt.want)
			}
		})
	}
}

func TestHandle_List(t *testing.T) {
	d := newDispatcher(t, "!")

	reply, ok := d.Handle(context.Background(), "!list")
	if !ok || reply.Error {
		t.Fatalf("Handle(!list) = %+v, %v", reply, ok)
	}

	want := "C2S:\n" +
		"3    =>    C\n" +
		"\n" +
		"S2C:\n" +
		"1    =>    A\n" +
		"2    =>    B\n"
	if reply.Text != want {
		t.Errorf("list reply = %q, want %q", reply.Text, want)
	}
}

func TestHandle_ListEmpty(t *testing.T) {
	r := registry.New()
	_ = r.Load(domain.SourceDocument{})
	d := NewDispatcher(lookup.NewService(r), "~", nil)

	reply, _ := d.Handle(context.Background(), "~list")
	if reply.Text != "C2S:\n\nS2C:\n" {
		t.Errorf("empty list reply = %q", reply.Text)
	}
}

func TestHandle_Ignored(t *testing.T) {
	d := newDispatcher(t, "~")

	for _, msg := range []string{"", "hello", "i2p 1 c2s", "~", "~   "} {
		if _, ok := d.Handle(context.Background(), msg); ok {
			t.Errorf("Handle(%q) handled, want ignored", msg)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := d.Handle(ctx, "~list"); ok {
		t.Error("Handle with cancelled context handled")
	}
}

func TestHandle_UnknownAndHelp(t *testing.T) {
	d := newDispatcher(t, "~")

	reply, ok := d.Handle(context.Background(), "~frobnicate")
	if !ok || !reply.Error || !strings.Contains(reply.Text, `Unknown command "frobnicate"`) {
		t.Errorf("unknown command reply = %+v, %v", reply, ok)
	}

	reply, ok = d.Handle(context.Background(), "~help")
	if !ok || reply.Error {
		t.Fatalf("help reply = %+v, %v", reply, ok)
	}
	for _, want := range []string{"~i2p <id> <bound>", "~list", "~help"} {
		if !strings.Contains(reply.Text, want) {
			t.Errorf("help missing %q: %s", want, reply.Text)
		}
	}
}

func TestHandle_ErrorRepliesUsePrefix(t *testing.T) {
	d := newDispatcher(t, "!")

	tests := map[string]string{
		"!i2p":   "An error occurred:\nUsage: !i2p <id> <bound>",
		"!nope":  "An error occurred:\nUnknown command \"nope\", try !help",
		"!i2p 7": "An error occurred:\nUsage: !i2p <id> <bound>",
	}
	for msg, want := range tests {
		reply, ok := d.Handle(context.Background(), msg)
		if !ok || !reply.Error || reply.Text != want {
			t.Errorf("Handle(%q) = %+v, %v; want %q", msg, reply, ok, want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrInvalidIDFormat, MsgInvalidID},
		{domain.ErrUnknownDirection, MsgInvalidDirection},
		{domain.ErrPacketNotFound, MsgNotFound},
		{domain.ErrNotReady, MsgNotReady},
		{domain.ErrFetch, domain.ErrFetch.Error()},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
