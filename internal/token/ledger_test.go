package token

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ledger", func() {
	var (
		ledger *Ledger
		a, b   ID
	)

	BeforeEach(func() {
		ledger = NewLedger()
		a = TokenID([]byte("a"))
		b = TokenID([]byte("b"))
	})

	It("assigns owners and tracks balances", func() {
		Expect(ledger.Mint("alice", a)).To(Succeed())
		Expect(ledger.Mint("alice", b)).To(Succeed())

		owner, err := ledger.OwnerOf(a)
		Expect(err).NotTo(HaveOccurred())
		Expect(owner).To(Equal("alice"))
		Expect(ledger.BalanceOf("alice")).To(Equal(uint64(2)))
		Expect(ledger.BalanceOf("bob")).To(BeZero())
		Expect(ledger.Len()).To(Equal(2))
	})

	It("refuses to mint an id twice", func() {
		Expect(ledger.Mint("alice", a)).To(Succeed())

		err := ledger.Mint("bob", a)
		var already *AlreadyMintedError
		Expect(errors.As(err, &already)).To(BeTrue())
		Expect(already.Owner).To(Equal("alice"))
		Expect(ledger.BalanceOf("bob")).To(BeZero())
	})

	It("rejects an empty receiver", func() {
		Expect(ledger.Mint("", a)).To(MatchError(ErrInvalidReceiver))
	})

	It("reports unknown ids", func() {
		_, err := ledger.OwnerOf(a)
		Expect(err).To(MatchError(ErrNonexistentToken))
	})

	It("revokes a mint", func() {
		Expect(ledger.Mint("alice", a)).To(Succeed())
		ledger.revoke(a)
		ledger.revoke(b)

		_, err := ledger.OwnerOf(a)
		Expect(err).To(MatchError(ErrNonexistentToken))
		Expect(ledger.BalanceOf("alice")).To(BeZero())
		Expect(ledger.Len()).To(BeZero())
	})

	It("mints each id once under contention", func() {
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ledger.Mint("racer", a) == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		Expect(wins).To(Equal(1))
		Expect(ledger.BalanceOf("racer")).To(Equal(uint64(1)))
	})
})
