package rawwave

import "fmt"

// decodeMono writes the unweighted sum of every source channel of each frame
// to out. The sum isn't divided by the channel count.
func decodeMono(dec *frameDecoder, data []byte, out []float32) {
	for i := range out {
		var sum float32
		for _, s := range dec.decodeFrame(data, i) {
			sum += s
		}

		out[i] = sum
	}
}

// decodeStereo pans every source channel into left and right.
func decodeStereo(dec *frameDecoder, data []byte, pans []panWeights, left, right []float32) {
	for i := range left {
		var l, r float32
		for ch, s := range dec.decodeFrame(data, i) {
			l += pans[ch].left * s
			r += pans[ch].right * s
		}

		left[i] = l
		right[i] = r
	}
}

// stereoPans assigns the i-th speaker of the mask to the i-th source channel.
func stereoPans(mask ChannelMask, channels int) ([]panWeights, error) {
	if mask.Count() != channels {
		return nil, fmt.Errorf("%w: channel mask %s names %d speakers for %d channels",
			ErrUnsupportedFormat, mask, mask.Count(), channels)
	}

	speakers := mask.Speakers()
	if len(speakers) != channels {
		return nil, fmt.Errorf("%w: channel mask %s names unknown speakers", ErrUnsupportedFormat, mask)
	}

	pans := make([]panWeights, channels)
	for ch, s := range speakers {
		pans[ch] = panTable[s]
	}

	return pans, nil
}
