package token

import (
	"encoding/binary"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func word(buf []byte, i int) []byte { return buf[i*wordSize : (i+1)*wordSize] }

func wordUint(buf []byte, i int) uint64 {
	return binary.BigEndian.Uint64(word(buf, i)[wordSize-8:])
}

// tupleBody checks the leading tuple offset and returns what follows it.
func tupleBody(buf []byte) []byte {
	Expect(wordUint(buf, 0)).To(Equal(uint64(wordSize)))
	return buf[wordSize:]
}

var _ = Describe("Encode", func() {
	It("lays out the tuple head as five offsets and the tick count", func() {
		buf := Encode([]uint64{1, 2}, []int64{3, 4}, []int64{5, 6}, []int64{7, 8}, []int64{9, 10}, 1000)
		Expect(buf).To(HaveLen((1 + 6 + 5*3) * wordSize))
		buf = tupleBody(buf)

		Expect(wordUint(buf, 0)).To(Equal(uint64(192)))
		Expect(wordUint(buf, 1)).To(Equal(uint64(192 + 96)))
		Expect(wordUint(buf, 2)).To(Equal(uint64(192 + 2*96)))
		Expect(wordUint(buf, 3)).To(Equal(uint64(192 + 3*96)))
		Expect(wordUint(buf, 4)).To(Equal(uint64(192 + 4*96)))
		Expect(wordUint(buf, 5)).To(Equal(uint64(1000)))

		Expect(wordUint(buf, 6)).To(Equal(uint64(2)))
		Expect(wordUint(buf, 7)).To(Equal(uint64(1)))
		Expect(wordUint(buf, 8)).To(Equal(uint64(2)))
		Expect(wordUint(buf, 18)).To(Equal(uint64(2)))
		Expect(wordUint(buf, 20)).To(Equal(uint64(10)))
	})

	It("sign-extends negative coordinates", func() {
		buf := tupleBody(Encode([]uint64{1}, []int64{-1}, []int64{0}, []int64{0}, []int64{0}, 0))

		x := word(buf, 6+2+1)
		for _, b := range x {
			Expect(b).To(Equal(byte(0xff)))
		}
		y := word(buf, 6+2+2+1)
		for _, b := range y {
			Expect(b).To(BeZero())
		}
	})

	It("encodes empty arrays as bare length words", func() {
		buf := Encode(nil, nil, nil, nil, nil, 7)
		Expect(buf).To(HaveLen(12 * wordSize))
		buf = tupleBody(buf)
		Expect(wordUint(buf, 4)).To(Equal(uint64(192 + 4*32)))
		for i := 6; i < 11; i++ {
			Expect(wordUint(buf, i)).To(BeZero())
		}
	})
})

var _ = Describe("TokenID", func() {
	It("is Keccak-256", func() {
		Expect(TokenID(nil).String()).To(Equal("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"))
		Expect(TokenID([]byte("abc")).String()).To(Equal("0x4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"))
	})

	It("depends on every field of the request", func() {
		base := Request{Mass: []uint64{10, 20}, X: []int64{1, 2}, Y: []int64{3, 4}, VelX: []int64{5, 6}, VelY: []int64{7, 8}, Ticks: 100}
		ids := map[ID]bool{base.ID(): true}

		variants := []func(r *Request){
			func(r *Request) { r.Mass = []uint64{10, 21} },
			func(r *Request) { r.X = []int64{1, -2} },
			func(r *Request) { r.Y = []int64{3, 5} },
			func(r *Request) { r.VelX = []int64{6, 5} },
			func(r *Request) { r.VelY = []int64{7, 9} },
			func(r *Request) { r.Ticks = 101 },
		}
		for _, mutate := range variants {
			r := base
			mutate(&r)
			ids[r.ID()] = true
		}
		Expect(ids).To(HaveLen(len(variants) + 1))
		Expect(base.ID()).To(Equal(base.ID()))
	})
})

var _ = Describe("ID", func() {
	It("round-trips through hex and decimal", func() {
		id := TokenID([]byte("rkfall"))

		parsed, err := ParseID(id.String())
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(id))

		parsed, err = ParseID(id.Decimal())
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(id))
	})

	It("pads short hex", func() {
		id, err := ParseID("0xabc")
		Expect(err).NotTo(HaveOccurred())
		Expect(id.Decimal()).To(Equal("2748"))
		Expect(id.String()).To(Equal("0x" + strings.Repeat("0", 61) + "abc"))
		Expect(id.IsZero()).To(BeFalse())
	})

	It("rejects garbage", func() {
		for _, s := range []string{"0x", "0xzz", "-1", "hello", "0x" + strings.Repeat("f", 65)} {
			_, err := ParseID(s)
			Expect(err).To(HaveOccurred(), s)
		}
	})

	It("marshals as text", func() {
		id := TokenID(nil)
		text, err := id.MarshalText()
		Expect(err).NotTo(HaveOccurred())

		var back ID
		Expect(back.UnmarshalText(text)).To(Succeed())
		Expect(back).To(Equal(id))
	})
})
