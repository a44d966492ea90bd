package argon2

const addressBlockWords = 128

// fillSegment fills one (pass, slice, lane) segment of memory in place,
// following RFC 9106 §3.4. Data-independent addressing (argon2i, and the
// first two slices of argon2id's first pass) draws its pseudo-random
// values from a chain of address blocks generated by compress() over a
// counter block; data-dependent addressing (argon2d, and the rest of
// argon2id) draws them from the first word of the previous block.
func fillSegment(memory []block, pass, slice, lane, laneLength, parallelism, segmentLength, totalBlocks, iterations uint32, mode Type) {
	dataIndependent := mode == TypeI || (mode == TypeID && pass == 0 && slice < 2)

	var addressBlock, inputBlock, zeroBlock block
	if dataIndependent {
		inputBlock[0] = uint64(pass)
		inputBlock[1] = uint64(lane)
		inputBlock[2] = uint64(slice)
		inputBlock[3] = uint64(totalBlocks)
		inputBlock[4] = uint64(iterations)
		inputBlock[5] = uint64(mode)
	}

	startIndex := uint32(0)
	if pass == 0 && slice == 0 {
		startIndex = 2
		if dataIndependent {
			inputBlock[6]++
			compress(&addressBlock, &inputBlock, &zeroBlock, false)
			compress(&addressBlock, &addressBlock, &zeroBlock, false)
		}
	}

	curOffset := lane*laneLength + slice*segmentLength + startIndex

	for index := startIndex; index < segmentLength; index++ {
		prevOffset := curOffset - 1
		if index == 0 && slice == 0 {
			prevOffset += laneLength
		}

		var random uint64
		if dataIndependent {
			if index%addressBlockWords == 0 {
				inputBlock[6]++
				compress(&addressBlock, &inputBlock, &zeroBlock, false)
				compress(&addressBlock, &addressBlock, &zeroBlock, false)
			}
			random = addressBlock[index%addressBlockWords]
		} else {
			random = memory[prevOffset][0]
		}

		refOffset := referenceBlock(pass, slice, lane, laneLength, parallelism, segmentLength, index, random)
		compress(&memory[curOffset], &memory[prevOffset], &memory[refOffset], pass > 0)
		curOffset++
	}
}
