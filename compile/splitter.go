package compile

import "fmt"

// splitRules partitions processed CSS into top-level brace-balanced rule
// blocks. A block closes every time the depth returns to zero after having
// been positive, inclusive of the closing brace; residue between blocks
// attaches to the front of the following block. Keyframe bodies are a single
// block by definition. The concatenation of all blocks equals the input
// exactly; a remainder after the last balanced block means the preprocessor
// returned something the compiler cannot trust.
func splitRules(processed string, keyframes bool) ([]string, error) {
	if keyframes {
		return []string{processed}, nil
	}

	var blocks []string
	depth, opened, cut := 0, false, 0
	for i, r := range processed {
		switch r {
		case '{':
			depth++
			opened = true
		case '}':
			depth--
			if depth == 0 && opened {
				blocks = append(blocks, processed[cut:i+1])
				cut = i + 1
				opened = false
			}
		}
	}
	if cut != len(processed) {
		return nil, fmt.Errorf("%w: %d bytes left after last block", ErrUnbalancedRules, len(processed)-cut)
	}
	return blocks, nil
}
