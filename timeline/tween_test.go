package timeline

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tween", func() {
	var (
		tl     *Timeline
		values []float64
	)

	collect := func(v float64) {
		values = append(values, v)
	}

	BeforeEach(func() {
		tl = New()
		values = nil
	})

	It("should interpolate linearly over its range by default", func() {
		_, err := tl.RegisterTween(0, 1000, collect)
		Expect(err).ToNot(HaveOccurred())
		Expect(values).To(Equal([]float64{0})) // applied once at registration

		Expect(tl.Seek(500)).To(Succeed())
		Expect(tl.Seek(0)).To(Succeed())
		Expect(tl.Seek(1500)).To(Succeed())

		Expect(values).To(Equal([]float64{0, 0.5, 0, 1}))
	})

	It("should clamp at the boundary, not extrapolate", func() {
		_, _ = tl.RegisterTween(0, 1000, collect)

		Expect(tl.Seek(1500)).To(Succeed())
		Expect(values[len(values)-1]).To(Equal(1.0))
	})

	It("should not fire at all outside its life", func() {
		_, _ = tl.RegisterTween(0, 10, collect)

		Expect(tl.Seek(15)).To(Succeed())
		applied := len(values)

		// The span (15, 25) no longer touches [0, 10].
		Expect(tl.Seek(25)).To(Succeed())
		Expect(values).To(HaveLen(applied))
	})

	It("should keep disjoint tweens independent", func() {
		var a, b []float64
		_, _ = tl.RegisterTween(0, 10, func(v float64) { a = append(a, v) })
		_, _ = tl.RegisterTween(20, 10, func(v float64) { b = append(b, v) })

		Expect(tl.Seek(15)).To(Succeed())
		Expect(a[len(a)-1]).To(Equal(1.0))
		Expect(b).To(BeEmpty())

		Expect(tl.Seek(25)).To(Succeed())
		Expect(b).To(Equal([]float64{0.5}))
	})

	It("should report 1 for a zero-duration tween once reached", func() {
		_, _ = tl.RegisterTween(5, 0, collect)
		Expect(values).To(BeEmpty())

		Expect(tl.Seek(5)).To(Succeed())
		Expect(values).To(Equal([]float64{1}))

		Expect(tl.Seek(3)).To(Succeed())
		Expect(values).To(Equal([]float64{1, 0}))
	})

	It("should map progress through a custom range", func() {
		_, _ = tl.RegisterTween(0, 10, collect, WithRange(100, 200))

		Expect(tl.Seek(5)).To(Succeed())
		Expect(values[len(values)-1]).To(Equal(150.0))
	})

	It("should resolve dynamic bounds at application time", func() {
		upper := 10.0
		_, _ = tl.RegisterTween(0, 10, collect,
			WithFromFunc(func() float64 { return 0 }),
			WithToFunc(func() float64 { return upper }),
		)

		Expect(tl.Seek(5)).To(Succeed())
		Expect(values[len(values)-1]).To(Equal(5.0))

		upper = 100
		Expect(tl.Seek(5.0001)).To(Succeed())
		Expect(values[len(values)-1]).To(BeNumerically("~", 50, 0.01))
	})

	It("should pass progress through the easing function", func() {
		_, _ = tl.RegisterTween(0, 10, collect, WithEasing(EaseInQuad))

		Expect(tl.Seek(5)).To(Succeed())
		Expect(values[len(values)-1]).To(Equal(0.25))
	})

	It("should apply once synchronously when registered over the current position", func() {
		Expect(tl.Jump(5)).To(Succeed())

		_, _ = tl.RegisterTween(0, 10, collect)
		Expect(values).To(Equal([]float64{0.5}))
	})

	It("should reject a negative duration", func() {
		_, err := tl.RegisterTween(0, -1, collect)
		Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
	})

	It("should reject a nil apply callback", func() {
		_, err := tl.RegisterTween(0, 10, nil)
		Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
	})
})

var _ = Describe("ChainHandle", func() {
	var tl *Timeline

	BeforeEach(func() {
		tl = New()
	})

	It("should anchor events at their time", func() {
		h, err := tl.RegisterEvent(5, func() {}, NoUndo)
		Expect(err).ToNot(HaveOccurred())
		Expect(h.Anchor()).To(Equal(VTime(5)))
	})

	It("should anchor tweens at their end", func() {
		h, err := tl.RegisterTween(2, 10, func(float64) {})
		Expect(err).ToNot(HaveOccurred())
		Expect(h.Anchor()).To(Equal(VTime(12)))
	})

	It("should compose delays relative to the anchor", func() {
		var fired []string

		h1, _ := tl.RegisterEvent(5, func() {
			fired = append(fired, "first")
		}, NoUndo)

		h2, err := h1.ThenEvent(3, func() {
			fired = append(fired, "second")
		}, NoUndo)
		Expect(err).ToNot(HaveOccurred())
		Expect(h2.Anchor()).To(Equal(VTime(8)))

		h3, err := h2.ThenTween(2, 10, func(float64) {})
		Expect(err).ToNot(HaveOccurred())
		Expect(h3.Anchor()).To(Equal(VTime(20)))

		Expect(tl.Seek(8)).To(Succeed())
		Expect(fired).To(Equal([]string{"first", "second"}))
	})
})

var _ = Describe("Easing", func() {
	It("should be exact at the endpoints", func() {
		for _, e := range []EasingFunc{
			Linear, EaseInQuad, EaseOutQuad, EaseInOutQuad,
			EaseOutCubic, SmoothStep,
		} {
			Expect(e(0)).To(BeNumerically("~", 0, 1e-12))
			Expect(e(1)).To(BeNumerically("~", 1, 1e-12))
		}
	})

	It("should produce the expected midpoints", func() {
		Expect(Linear(0.5)).To(Equal(0.5))
		Expect(EaseInQuad(0.5)).To(Equal(0.25))
		Expect(EaseOutQuad(0.5)).To(Equal(0.75))
		Expect(EaseInOutQuad(0.25)).To(Equal(0.125))
		Expect(EaseInOutQuad(0.75)).To(Equal(0.875))
		Expect(EaseOutCubic(0.5)).To(Equal(0.875))
		Expect(SmoothStep(0.5)).To(Equal(0.5))
	})
})
