package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/modules/tipbot/internal/entity"
	"github.com/gaze-network/tzbot/pkg/tezos/operation"
	"github.com/gaze-network/tzbot/pkg/tezos/rpc"
	"github.com/google/uuid"
)

const (
	testBranch   = "BM8hgE2Fmer4BP6xizFmeiVSSb3DjgomPw538TkPzMBrvqi93Ab"
	testProtocol = "PtParisBxoLz5gzMmn3d9WBQNoPSZakgnkMC2VNuQ3KXfUtUQeZ"
	testChainID  = "NetXdQprcVkpaWU"
	testForged   = "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a86c00"
	testOpHash   = "ooTipHashXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"
)

type fakeNode struct {
	mu sync.Mutex

	counter       int64
	headErr       error
	simulation    rpc.ApplyResult
	preapply      rpc.ApplyResult
	simulated     []operation.Envelope
	forged        []operation.Envelope
	preapplied    []operation.Envelope
	injected      []string
	counterLookup []string
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		counter:    26145,
		simulation: rpc.ApplyResult{Status: rpc.StatusApplied, ConsumedMilligas: 1420040},
		preapply:   rpc.ApplyResult{Status: rpc.StatusApplied, ConsumedGas: 1421},
	}
}

func (n *fakeNode) HeadHash(context.Context) (string, error) {
	if n.headErr != nil {
		return "", n.headErr
	}
	return testBranch, nil
}

func (n *fakeNode) Head(context.Context) (rpc.BlockHeader, error) {
	if n.headErr != nil {
		return rpc.BlockHeader{}, n.headErr
	}
	return rpc.BlockHeader{Hash: testBranch, ChainID: testChainID, Protocol: testProtocol, Level: 5726130}, nil
}

func (n *fakeNode) ChainID(context.Context) (string, error) {
	return testChainID, nil
}

func (n *fakeNode) Protocols(context.Context) (rpc.Protocols, error) {
	return rpc.Protocols{Protocol: testProtocol, NextProtocol: testProtocol}, nil
}

func (n *fakeNode) Constants(context.Context) (rpc.Constants, error) {
	return rpc.Constants{HardGasLimitPerOperation: 1040000, HardStorageLimitPerOperation: 60000}, nil
}

func (n *fakeNode) Counter(_ context.Context, address string) (int64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.counterLookup = append(n.counterLookup, address)
	return n.counter, nil
}

func (n *fakeNode) RunOperation(_ context.Context, envelope operation.Envelope, chainID string) (rpc.OperationResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if chainID != testChainID {
		return rpc.OperationResult{}, errors.Wrap(errs.Unavailable, "wrong chain")
	}
	n.simulated = append(n.simulated, envelope)
	return resultOf(envelope, n.simulation), nil
}

func (n *fakeNode) Forge(_ context.Context, envelope operation.Envelope) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.forged = append(n.forged, envelope)
	return testForged, nil
}

func (n *fakeNode) Preapply(_ context.Context, envelopes ...operation.Envelope) ([]rpc.OperationResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	results := make([]rpc.OperationResult, 0, len(envelopes))
	for _, envelope := range envelopes {
		n.preapplied = append(n.preapplied, envelope)
		results = append(results, resultOf(envelope, n.preapply))
	}
	return results, nil
}

func (n *fakeNode) Inject(_ context.Context, signedHex string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.injected = append(n.injected, signedHex)
	return testOpHash, nil
}

func resultOf(envelope operation.Envelope, result rpc.ApplyResult) rpc.OperationResult {
	tx := envelope.Transaction()
	return rpc.OperationResult{
		Signature: envelope.Signature,
		Contents: []rpc.ContentResult{{
			Kind:     tx.Kind,
			Counter:  tx.Counter,
			Metadata: rpc.ContentMetadata{OperationResult: result},
		}},
	}
}

// fakeTips is an in-memory ledger that remembers every status a tip went through.
type fakeTips struct {
	mu      sync.Mutex
	tips    map[uuid.UUID]entity.Tip
	history map[uuid.UUID][]entity.TipStatus
}

func newFakeTips() *fakeTips {
	return &fakeTips{
		tips:    make(map[uuid.UUID]entity.Tip),
		history: make(map[uuid.UUID][]entity.TipStatus),
	}
}

func (f *fakeTips) CreateTip(_ context.Context, tip *entity.Tip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tips[tip.Id] = *tip
	f.history[tip.Id] = append(f.history[tip.Id], tip.Status)
	return nil
}

func (f *fakeTips) UpdateTip(_ context.Context, tip *entity.Tip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tips[tip.Id]; !ok {
		return errors.WithStack(errs.NotFound)
	}
	f.tips[tip.Id] = *tip
	f.history[tip.Id] = append(f.history[tip.Id], tip.Status)
	return nil
}

func (f *fakeTips) GetTipById(_ context.Context, id uuid.UUID) (*entity.Tip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tip, ok := f.tips[id]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return &tip, nil
}

func (f *fakeTips) GetTipsBySource(_ context.Context, source string, limit int32, offset int32) ([]*entity.Tip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tips []*entity.Tip
	for _, tip := range f.tips {
		if tip.Source == source {
			tip := tip
			tips = append(tips, &tip)
		}
	}
	sort.Slice(tips, func(i, j int) bool { return tips[i].Id.String() < tips[j].Id.String() })
	if int(offset) >= len(tips) {
		return nil, nil
	}
	tips = tips[offset:]
	if int(limit) < len(tips) {
		tips = tips[:limit]
	}
	return tips, nil
}
