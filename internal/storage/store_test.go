package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/sim"
	"github.com/rkfall/rkfall/internal/token"
)

func orbit(ticks uint32) token.Request {
	return token.Request{
		Mass:  []uint64{100000000, 10000},
		X:     []int64{0, 0},
		Y:     []int64{0, 100000000},
		VelX:  []int64{0, 100000000},
		VelY:  []int64{0, 0},
		Ticks: ticks,
	}
}

type failingClose struct {
	io.WriteCloser
}

func (f failingClose) Close() error {
	f.WriteCloser.Close()
	return errors.New("close: input/output error")
}

var _ = Describe("Store", func() {
	var (
		dir    string
		st     *Store
		ledger *token.Ledger
		minter *token.Minter
		clock  time.Time
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		st = New(dir)
		Expect(st.Init()).To(Succeed())

		ledger = token.NewLedger()
		clock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		minter = token.NewMinter(ledger, sim.NewGravity(dynamo.ByID),
			token.WithRecorder(st),
			token.WithTrajectory(),
			token.WithClock(func() time.Time {
				clock = clock.Add(time.Second)
				return clock
			}),
		)
	})

	It("round-trips a minted record", func() {
		ev, err := minter.Mint(context.Background(), "alice", orbit(4))
		Expect(err).NotTo(HaveOccurred())

		loaded, err := st.Load(ev.TokenID)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.TokenID).To(Equal(ev.TokenID))
		Expect(loaded.Owner).To(Equal("alice"))
		Expect(loaded.FinalX).To(Equal(ev.FinalX))
		Expect(loaded.FinalVelY).To(Equal(ev.FinalVelY))
		Expect(loaded.Timestamp.Equal(ev.Timestamp)).To(BeTrue())

		traj, err := st.LoadTrajectory(ev.TokenID)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(HaveLen(5))

		initial, err := ev.Initial()
		Expect(err).NotTo(HaveOccurred())
		Expect(traj[0].Equal(initial)).To(BeTrue())

		final, err := ev.Final()
		Expect(err).NotTo(HaveOccurred())
		Expect(traj[4].Equal(final)).To(BeTrue())
	})

	It("lists records oldest first", func() {
		first, err := minter.Mint(context.Background(), "alice", orbit(1))
		Expect(err).NotTo(HaveOccurred())
		second, err := minter.Mint(context.Background(), "bob", orbit(2))
		Expect(err).NotTo(HaveOccurred())

		Expect(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)).To(Succeed())
		Expect(os.Mkdir(filepath.Join(dir, "scratch"), 0755)).To(Succeed())

		events, err := st.List()
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(HaveLen(2))
		Expect(events[0].TokenID).To(Equal(first.TokenID))
		Expect(events[1].TokenID).To(Equal(second.TokenID))
	})

	It("lists nothing when the directory is missing", func() {
		events, err := New(filepath.Join(dir, "missing")).List()
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(BeEmpty())
	})

	It("reports unknown tokens", func() {
		id := token.TokenID([]byte("nothing"))
		_, err := st.Load(id)
		Expect(err).To(MatchError(ErrNotFound))
		_, err = st.LoadTrajectory(id)
		Expect(err).To(MatchError(ErrNotFound))
	})

	It("restores ownership into a fresh ledger", func() {
		ev, err := minter.Mint(context.Background(), "alice", orbit(2))
		Expect(err).NotTo(HaveOccurred())

		fresh := token.NewLedger()
		Expect(st.Restore(fresh)).To(Succeed())
		owner, err := fresh.OwnerOf(ev.TokenID)
		Expect(err).NotTo(HaveOccurred())
		Expect(owner).To(Equal("alice"))

		again := token.NewMinter(fresh, sim.NewGravity(dynamo.ByID), token.WithRecorder(st))
		_, err = again.Mint(context.Background(), "bob", orbit(2))
		var already *token.AlreadyMintedError
		Expect(err).To(BeAssignableToTypeOf(already))
	})

	It("refuses to overwrite a record", func() {
		ev, err := minter.Mint(context.Background(), "alice", orbit(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Record(ev, nil)).NotTo(Succeed())
	})

	DescribeTable("reports close failures and rolls the mint back",
		func(name string) {
			create := createFile
			DeferCleanup(func() { createFile = create })
			createFile = func(path string) (io.WriteCloser, error) {
				f, err := create(path)
				if err != nil || filepath.Base(path) != name {
					return f, err
				}
				return failingClose{f}, nil
			}

			req := orbit(2)
			_, err := minter.Mint(context.Background(), "alice", req)
			Expect(err).To(MatchError(ContainSubstring("input/output error")))
			Expect(ledger.Len()).To(BeZero())
			Expect(filepath.Join(dir, req.ID().String())).NotTo(BeADirectory())
		},
		Entry("record file", recordFile),
		Entry("trajectory file", trajectoryFile),
	)
})

var _ = Describe("CSV", func() {
	It("round-trips negative and large values", func() {
		traj := []dynamo.System{
			{{ID: 0, Mass: 1, X: -5, Y: 9223372036854775807, VelX: -9223372036854775808, VelY: 3}},
			{{ID: 0, Mass: 1, X: -4, Y: 0, VelX: 0, VelY: 2}},
		}
		var buf bytes.Buffer
		Expect(WriteCSV(&buf, traj)).To(Succeed())

		back, err := ReadCSV(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(back).To(HaveLen(2))
		Expect(back[0].Equal(traj[0])).To(BeTrue())
		Expect(back[1].Equal(traj[1])).To(BeTrue())
	})

	It("rejects out-of-order ticks", func() {
		in := "tick,body,mass,x,y,vel_x,vel_y\n1,0,1,0,0,0,0\n"
		_, err := ReadCSV(bytes.NewBufferString(in))
		Expect(err).To(MatchError(ContainSubstring("out of order")))
	})

	It("reads a header-only file as empty", func() {
		traj, err := ReadCSV(bytes.NewBufferString("tick,body,mass,x,y,vel_x,vel_y\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(BeEmpty())
	})
})

var _ = Describe("ExportJSON", func() {
	It("flattens the event next to its trajectory", func() {
		ev := token.NewMintEvent(token.TokenID(nil), "alice", 1, sim.DefaultDt,
			dynamo.System{{Mass: 1}}, dynamo.System{{Mass: 1, X: 2}})
		traj := []dynamo.System{{{Mass: 1}}, {{Mass: 1, X: 2}}}

		var buf bytes.Buffer
		Expect(ExportJSON(&buf, ev, traj)).To(Succeed())

		var out map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &out)).To(Succeed())
		Expect(out).To(HaveKeyWithValue("owner", "alice"))
		Expect(out).To(HaveKeyWithValue("token_id", ev.TokenID.String()))
		Expect(out).To(HaveKeyWithValue("steps", BeNumerically("==", 2)))
		Expect(out["trajectory"]).To(HaveLen(2))
	})
})
