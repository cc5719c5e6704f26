package token

import (
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/sim"
)

type memRecorder struct {
	events       []*MintEvent
	trajectories [][]dynamo.System
	err          error
}

func (r *memRecorder) Record(ev *MintEvent, trajectory []dynamo.System) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	r.trajectories = append(r.trajectories, trajectory)
	return nil
}

func orbitRequest(ticks uint32) Request {
	return Request{
		Mass:  []uint64{100000000, 10000},
		X:     []int64{0, 0},
		Y:     []int64{0, 100000000},
		VelX:  []int64{0, 100000000},
		VelY:  []int64{0, 0},
		Ticks: ticks,
	}
}

var _ = Describe("Minter", func() {
	var (
		ctx      context.Context
		ledger   *Ledger
		recorder *memRecorder
		minter   *Minter
		clock    time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		ledger = NewLedger()
		recorder = &memRecorder{}
		clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		minter = NewMinter(ledger, sim.NewGravity(dynamo.ByID),
			WithRecorder(recorder),
			WithClock(func() time.Time { return clock }),
		)
	})

	It("mints the simulated outcome", func() {
		req := orbitRequest(10)

		ev, err := minter.Mint(ctx, "alice", req)
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.TokenID).To(Equal(req.ID()))
		Expect(ev.Owner).To(Equal("alice"))
		Expect(ev.Ticks).To(Equal(uint32(10)))
		Expect(ev.Dt).To(Equal(sim.DefaultDt))
		Expect(ev.Timestamp).To(Equal(clock))

		Expect(ev.Mass).To(Equal(req.Mass))
		Expect(ev.InitX).To(Equal(req.X))
		Expect(ev.InitVelX).To(Equal(req.VelX))

		sys, err := req.System()
		Expect(err).NotTo(HaveOccurred())
		want, err := sim.TickMany(10, sim.DefaultDt, sys)
		Expect(err).NotTo(HaveOccurred())

		final, err := ev.Final()
		Expect(err).NotTo(HaveOccurred())
		Expect(final.Equal(want)).To(BeTrue())

		initial, err := ev.Initial()
		Expect(err).NotTo(HaveOccurred())
		Expect(initial.Equal(sys)).To(BeTrue())

		owner, err := ledger.OwnerOf(ev.TokenID)
		Expect(err).NotTo(HaveOccurred())
		Expect(owner).To(Equal("alice"))
		Expect(recorder.events).To(ConsistOf(ev))
		Expect(recorder.trajectories[0]).To(BeNil())
	})

	It("passes the trajectory when asked", func() {
		minter = NewMinter(ledger, sim.NewGravity(dynamo.ByID), WithRecorder(recorder), WithTrajectory())

		_, err := minter.Mint(ctx, "alice", orbitRequest(5))
		Expect(err).NotTo(HaveOccurred())
		Expect(recorder.trajectories[0]).To(HaveLen(6))
	})

	It("mints zero ticks as the initial state", func() {
		req := orbitRequest(0)
		ev, err := minter.Mint(ctx, "alice", req)
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.FinalX).To(Equal(req.X))
		Expect(ev.FinalVelY).To(Equal(req.VelY))
	})

	It("refuses to mint the same request twice", func() {
		_, err := minter.Mint(ctx, "alice", orbitRequest(3))
		Expect(err).NotTo(HaveOccurred())

		_, err = minter.Mint(ctx, "bob", orbitRequest(3))
		var already *AlreadyMintedError
		Expect(errors.As(err, &already)).To(BeTrue())
		Expect(already.Owner).To(Equal("alice"))
		Expect(recorder.events).To(HaveLen(1))
	})

	It("treats a different tick count as a different token", func() {
		_, err := minter.Mint(ctx, "alice", orbitRequest(3))
		Expect(err).NotTo(HaveOccurred())
		_, err = minter.Mint(ctx, "alice", orbitRequest(4))
		Expect(err).NotTo(HaveOccurred())
		Expect(ledger.BalanceOf("alice")).To(Equal(uint64(2)))
	})

	DescribeTable("rejects invalid requests",
		func(owner string, mutate func(*Request), want error) {
			req := orbitRequest(3)
			mutate(&req)

			_, err := minter.Mint(ctx, owner, req)
			Expect(err).To(MatchError(want))
			Expect(ledger.Len()).To(BeZero())
			Expect(recorder.events).To(BeEmpty())
		},
		Entry("empty owner", "", func(*Request) {}, ErrInvalidReceiver),
		Entry("ragged arrays", "alice", func(r *Request) { r.VelY = r.VelY[:1] }, dynamo.ErrDimensionMismatch),
		Entry("duplicate masses", "alice", func(r *Request) { r.Mass = []uint64{5, 5} }, dynamo.ErrDuplicateMass),
		Entry("coincident bodies", "alice", func(r *Request) { r.Y = []int64{0, 0} }, dynamo.ErrCoincidentBodies),
		Entry("too many ticks", "alice", func(r *Request) { r.Ticks = math.MaxUint32 }, dynamo.ErrTooExpensive),
	)

	It("applies default limits to a simulator without any", func() {
		Expect(sim.NewGravity(dynamo.ByID).Limits()).To(Equal(sim.Limits{}))

		req := orbitRequest(3)
		req.Ticks = uint32(sim.DefaultLimits().MaxWork/4) + 1
		_, err := minter.Mint(ctx, "alice", req)
		Expect(err).To(MatchError(dynamo.ErrTooExpensive))
		Expect(ledger.Len()).To(BeZero())
	})

	It("honours the simulator's own limits", func() {
		s := sim.NewGravity(dynamo.ByID)
		s.SetLimits(sim.Limits{MaxBodies: 1})
		strict := NewMinter(ledger, s, WithRecorder(recorder))

		_, err := strict.Mint(ctx, "alice", orbitRequest(3))
		Expect(err).To(MatchError(dynamo.ErrTooExpensive))
		Expect(recorder.events).To(BeEmpty())
	})

	It("accepts explicit limits", func() {
		relaxed := NewMinter(ledger, sim.NewGravity(dynamo.ByID),
			WithRecorder(recorder),
			WithLimits(sim.Limits{MaxBodies: 2, MaxWork: 40}),
		)

		_, err := relaxed.Mint(ctx, "alice", orbitRequest(10))
		Expect(err).NotTo(HaveOccurred())
		_, err = relaxed.Mint(ctx, "alice", orbitRequest(11))
		Expect(err).To(MatchError(dynamo.ErrTooExpensive))
	})

	It("rolls back when the record cannot be written", func() {
		recorder.err = errors.New("disk full")

		_, err := minter.Mint(ctx, "alice", orbitRequest(3))
		Expect(err).To(MatchError(ContainSubstring("disk full")))
		Expect(ledger.Len()).To(BeZero())
		Expect(ledger.BalanceOf("alice")).To(BeZero())

		recorder.err = nil
		_, err = minter.Mint(ctx, "alice", orbitRequest(3))
		Expect(err).NotTo(HaveOccurred())
	})

	It("stops on cancellation", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := minter.Mint(canceled, "alice", orbitRequest(1000))
		Expect(err).To(MatchError(context.Canceled))
		Expect(ledger.Len()).To(BeZero())
	})
})
