package signing

// DeriveRequestStatus computes a request's lifecycle status from its signers.
// Any decline is terminal for the whole request.
func DeriveRequestStatus(signers []Signer) RequestStatus {
	if len(signers) == 0 {
		return RequestInitiated
	}
	signed := 0
	viewed := 0
	for _, signer := range signers {
		switch signer.Status {
		case SignerDeclined:
			return RequestDeclined
		case SignerSigned:
			signed++
		case SignerViewed:
			viewed++
		}
	}
	switch {
	case signed == len(signers):
		return RequestCompleted
	case signed > 0:
		return RequestPartiallySigned
	case viewed > 0:
		return RequestInProgress
	default:
		return RequestInitiated
	}
}

// CountByStatus tallies signers currently in the given status.
func CountByStatus(signers []Signer, status SignerStatus) int {
	count := 0
	for _, signer := range signers {
		if signer.Status == status {
			count++
		}
	}
	return count
}

// SequentialTurn reports whether the identified signer may act under
// sequential signing: every signer with a lower signing order must have
// signed already. Unknown signer ids may not act.
func SequentialTurn(signers []Signer, signerID string) bool {
	var current *Signer
	for i := range signers {
		if signers[i].ID == signerID {
			current = &signers[i]
			break
		}
	}
	if current == nil {
		return false
	}
	for _, signer := range signers {
		if signer.ID == current.ID {
			continue
		}
		if signer.SigningOrder < current.SigningOrder && signer.Status != SignerSigned {
			return false
		}
	}
	return true
}
