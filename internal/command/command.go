// Package command turns chat-style text commands into lookup queries and
// renders the replies as plain text.
//
//	~i2p <id> <bound>   look up one packet (bound is c2s or s2c)
//	~list               list every packet, C2S first
//	~help               show usage
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/internal/lookup"
	"github.com/bft-labs/i2p/pkg/log"
)

// DefaultPrefix is the command prefix used when none is configured.
const DefaultPrefix = "~"

// User-facing error messages.
const (
	MsgInvalidID        = "Invalid ID, must be a number!"
	MsgInvalidDirection = `Invalid bound, please use "c2s" OR "s2c"!`
	MsgNotFound         = "No such packet!"
	MsgNotReady         = "Packet data is still loading, try again shortly."
)

// Querier is the lookup surface the dispatcher needs.
type Querier interface {
	LookupPacket(token, rawID string) (domain.Result, error)
	ListAll() domain.Listing
}

// Reply is the rendered answer to one command.
type Reply struct {
	Text  string
	Error bool
}

// Dispatcher routes prefixed messages to command handlers.
// It is stateless and safe for concurrent use.
type Dispatcher struct {
	querier Querier
	prefix  string
	logger  log.Logger
}

// NewDispatcher creates a dispatcher. An empty prefix means DefaultPrefix.
func NewDispatcher(q Querier, prefix string, logger log.Logger) *Dispatcher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Dispatcher{querier: q, prefix: prefix, logger: logger}
}

// Prefix returns the configured command prefix.
func (d *Dispatcher) Prefix() string {
	return d.prefix
}

// Handle executes msg. ok is false when msg is not a command (no prefix or
// nothing after it) or ctx is already done; no reply should be sent then.
func (d *Dispatcher) Handle(ctx context.Context, msg string) (reply Reply, ok bool) {
	if ctx.Err() != nil {
		return Reply{}, false
	}
	msg = strings.TrimSpace(msg)
	if !strings.HasPrefix(msg, d.prefix) {
		return Reply{}, false
	}
	args := strings.Fields(strings.TrimPrefix(msg, d.prefix))
	if len(args) == 0 {
		return Reply{}, false
	}

	reqID := uuid.NewString()
	start := time.Now()
	name := strings.ToLower(args[0])

	switch name {
	case "i2p":
		reply = d.lookup(args[1:])
	case "list":
		reply.Text = d.list()
	case "help":
		reply.Text = d.help()
	default:
		reply = errorReply(fmt.Sprintf("Unknown command %q, try %shelp", args[0], d.prefix))
	}

	d.logger.Debug("command handled",
		log.String("request_id", reqID),
		log.String("command", name),
		log.Bool("error", reply.Error),
		log.Duration("took", time.Since(start)),
	)
	return reply, true
}

func errorReply(msg string) Reply {
	return Reply{Text: "An error occurred:\n" + msg, Error: true}
}

func (d *Dispatcher) usage() Reply {
	return errorReply("Usage: " + d.prefix + "i2p <id> <bound>")
}

func (d *Dispatcher) lookup(args []string) Reply {
	if len(args) < 1 {
		return d.usage()
	}
	id := args[0]
	// The id is validated before the bound argument is required.
	if !lookup.IsNumeric(id) {
		return errorReply(MsgInvalidID)
	}
	if len(args) < 2 {
		return d.usage()
	}

	res, err := d.querier.LookupPacket(args[1], id)
	if err != nil {
		return errorReply(UserMessage(err))
	}
	return Reply{Text: RenderResult(res)}
}

func (d *Dispatcher) list() string {
	return RenderListing(d.querier.ListAll())
}

func (d *Dispatcher) help() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	fmt.Fprintf(&b, "  %si2p <id> <bound>  look up a packet name (bound: c2s or s2c)\n", d.prefix)
	fmt.Fprintf(&b, "  %slist              list every packet\n", d.prefix)
	fmt.Fprintf(&b, "  %shelp              show this message\n", d.prefix)
	return b.String()
}

// UserMessage maps a lookup error to the text shown to users.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidIDFormat):
		return MsgInvalidID
	case errors.Is(err, domain.ErrUnknownDirection):
		return MsgInvalidDirection
	case errors.Is(err, domain.ErrPacketNotFound):
		return MsgNotFound
	case errors.Is(err, domain.ErrNotReady):
		return MsgNotReady
	default:
		return err.Error()
	}
}
