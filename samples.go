package sentiment

var sampleTexts = []string{
	"This product is absolutely amazing! I love it so much.",
	"The service was terrible and I'm very disappointed.",
	"It's okay, nothing special but not bad either.",
	"I'm so happy with this purchase, it exceeded my expectations!",
	"This is the worst experience I've ever had.",
	"I'm not happy with this at all, it's completely useless.",
	"The quality is outstanding and I'm extremely satisfied!",
	"It's not terrible, but it's not great either.",
	"I absolutely hate this, it's the most disappointing thing ever.",
	"This is fantastic! I couldn't be more pleased with the results.",
}

// SampleTexts returns example inputs for demos.
func SampleTexts() []string {
	return append([]string(nil), sampleTexts...)
}
