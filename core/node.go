package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	coreerrors "connectsphere/core/errors"
	"connectsphere/core/events"
	"connectsphere/core/state"
	"connectsphere/crypto"
	"connectsphere/native/common"
	"connectsphere/native/content"
	"connectsphere/native/token"
	"connectsphere/observability"
	"connectsphere/observability/logging"
	"connectsphere/storage"
)

var errClosed = errors.New("core: node closed")

const tracerName = "connectsphere/core"

// Options configures a Node. Zero accounts select the derived system
// accounts.
type Options struct {
	HoldingAccount [20]byte
	EscrowAccount  [20]byte
	// MaxSupply lowers the built-in supply cap when set.
	MaxSupply *big.Int
	// Emitter receives the events of every committed operation.
	Emitter events.Emitter
	Logger  *slog.Logger
	Now     func() int64
	// TracerProvider defaults to the global otel provider.
	TracerProvider trace.TracerProvider
	// AllowMigrate starts the node even when the stored schema version
	// differs from state.StateVersion.
	AllowMigrate bool
}

// Node owns the state and serializes every mutating operation. Each
// operation runs against a fresh overlay with engines bound to it; the
// overlay and the operation's events are released together on success.
type Node struct {
	db        storage.Database
	state     *state.Manager
	stateMu   sync.RWMutex
	closed    bool
	holding   [20]byte
	escrow    [20]byte
	maxSupply *big.Int
	emitter   events.Emitter
	logger    *slog.Logger
	tracer    trace.Tracer
	nowFn     func() int64
}

func NewNode(db storage.Database, opts Options) (*Node, error) {
	if db == nil {
		return nil, fmt.Errorf("core: database must not be nil")
	}
	manager := state.NewManager(db)
	if err := state.EnsureStateVersion(manager, opts.AllowMigrate); err != nil {
		return nil, err
	}
	n := &Node{
		db:        db,
		state:     manager,
		holding:   opts.HoldingAccount,
		escrow:    opts.EscrowAccount,
		maxSupply: opts.MaxSupply,
		logger:    opts.Logger,
		nowFn:     opts.Now,
	}
	if n.holding == ([20]byte{}) {
		n.holding = crypto.SystemAccount("holding")
	}
	if n.escrow == ([20]byte{}) {
		n.escrow = crypto.SystemAccount("license-escrow")
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	if n.nowFn == nil {
		n.nowFn = func() int64 { return time.Now().Unix() }
	}
	provider := opts.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	n.tracer = provider.Tracer(tracerName)
	n.emitter = events.Fanout{observability.Events(), opts.Emitter}
	for _, module := range []string{common.ModuleToken, common.ModuleContent} {
		observability.Operations().SetPause(module, n.state.IsPaused(module))
	}
	return n, nil
}

// Close releases the underlying database. Further operations fail.
func (n *Node) Close() {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	n.db.Close()
}

func (n *Node) HoldingAccount() [20]byte { return n.holding }

func (n *Node) EscrowAccount() [20]byte { return n.escrow }

func (n *Node) newLedger(manager *state.Manager, emitter events.Emitter, now func() int64) *token.Engine {
	engine := token.NewEngine()
	engine.SetState(manager)
	engine.SetEmitter(emitter)
	engine.SetNowFunc(now)
	engine.SetHoldingAccount(n.holding)
	if n.maxSupply != nil {
		engine.SetMaxSupply(n.maxSupply)
	}
	return engine
}

func (n *Node) newRegistry(manager *state.Manager, ledger *token.Engine, emitter events.Emitter, now func() int64) *content.Engine {
	engine := content.NewEngine()
	engine.SetState(manager)
	engine.SetLedger(ledger)
	engine.SetEmitter(emitter)
	engine.SetNowFunc(now)
	engine.SetEscrowAccount(n.escrow)
	return engine
}

// txn bundles the overlay of one operation with engines bound to it.
type txn struct {
	state    *state.Manager
	ledger   *token.Engine
	registry *content.Engine
	emitter  events.Emitter
	now      int64
}

func (t *txn) emit(evt events.Event) { t.emitter.Emit(evt) }

// apply runs fn as one atomic operation. The clock is frozen for the whole
// call. A reward batch that stopped part way still commits the transfers it
// applied, and its error is returned alongside.
func (n *Node) apply(module, op string, actor [20]byte, fn func(tx *txn) error) error {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()

	start := time.Now()
	if n.closed {
		return errClosed
	}
	opID := uuid.NewString()
	_, span := n.tracer.Start(context.Background(), module+"."+op, trace.WithAttributes(
		attribute.String("op.id", opID),
		attribute.String("op.module", module),
	))
	defer span.End()
	now := n.nowFn()
	clock := func() int64 { return now }
	buffer := events.NewBuffer()
	overlay := n.state.Begin()
	ledger := n.newLedger(overlay, buffer, clock)
	tx := &txn{
		state:    overlay,
		ledger:   ledger,
		registry: n.newRegistry(overlay, ledger, buffer, clock),
		emitter:  buffer,
		now:      now,
	}

	err := fn(tx)
	commit := err == nil || coreerrors.IsPartial(err)
	if commit {
		if cerr := overlay.Commit(); cerr != nil {
			overlay.Discard()
			buffer.Reset()
			err = fmt.Errorf("core: commit %s: %w", op, cerr)
			commit = false
		}
	} else {
		overlay.Discard()
		buffer.Reset()
	}

	delivered := 0
	if commit {
		delivered = buffer.Len()
		buffer.Flush(events.Annotate(n.emitter, opID))
		if module == common.ModuleToken {
			if total, serr := n.newLedger(n.state, events.NoopEmitter{}, clock).TotalSupply(); serr == nil {
				observability.Operations().RecordSupply(total)
			}
		}
	}
	n.observe(module, op, opID, actor, delivered, err, time.Since(start))
	span.SetAttributes(attribute.Int("op.events", delivered))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, string(coreerrors.CodeOf(err)))
	}
	return err
}

func (n *Node) observe(module, op, opID string, actor [20]byte, delivered int, err error, elapsed time.Duration) {
	code := ""
	if err != nil {
		code = string(coreerrors.CodeOf(err))
	}
	observability.Operations().Observe(module, op, code, elapsed)

	attrs := []any{
		slog.String("module", module),
		slog.String("op", op),
		slog.String("opId", opID),
	}
	if actor != ([20]byte{}) {
		attrs = append(attrs, logging.MaskField("actor", crypto.Render(actor)))
	}
	switch {
	case err == nil:
		n.logger.Debug("operation committed", append(attrs, slog.String("outcome", "committed"), slog.Int("events", delivered))...)
	case coreerrors.IsPartial(err):
		n.logger.Warn("operation partially applied", append(attrs, slog.String("outcome", "partial"), slog.Int("events", delivered), slog.String("code", code), slog.Any("error", err))...)
	default:
		n.logger.Debug("operation rejected", append(attrs, slog.String("outcome", "rejected"), slog.String("code", code), slog.Any("error", err))...)
	}
}

// view runs fn against committed state under the read lock.
func (n *Node) view(fn func(tx *txn) error) error {
	n.stateMu.RLock()
	defer n.stateMu.RUnlock()
	if n.closed {
		return errClosed
	}
	now := n.nowFn()
	clock := func() int64 { return now }
	noop := events.NoopEmitter{}
	ledger := n.newLedger(n.state, noop, clock)
	return fn(&txn{
		state:    n.state,
		ledger:   ledger,
		registry: n.newRegistry(n.state, ledger, noop, clock),
		emitter:  noop,
		now:      now,
	})
}
