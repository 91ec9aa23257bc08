package signing

import "testing"

func TestDeriveRequestStatus(t *testing.T) {
	tests := []struct {
		name    string
		signers []Signer
		want    RequestStatus
	}{
		{
			name: "no signers",
			want: RequestInitiated,
		},
		{
			name:    "all initiated",
			signers: []Signer{{Status: SignerInitiated}, {Status: SignerInitiated}},
			want:    RequestInitiated,
		},
		{
			name:    "one viewed",
			signers: []Signer{{Status: SignerViewed}, {Status: SignerInitiated}},
			want:    RequestInProgress,
		},
		{
			name:    "some signed",
			signers: []Signer{{Status: SignerSigned}, {Status: SignerViewed}},
			want:    RequestPartiallySigned,
		},
		{
			name:    "all signed",
			signers: []Signer{{Status: SignerSigned}, {Status: SignerSigned}},
			want:    RequestCompleted,
		},
		{
			name:    "decline overrides progress",
			signers: []Signer{{Status: SignerSigned}, {Status: SignerDeclined}},
			want:    RequestDeclined,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveRequestStatus(tc.signers); got != tc.want {
				t.Fatalf("status = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCountByStatus(t *testing.T) {
	signers := []Signer{
		{Status: SignerSigned},
		{Status: SignerSigned},
		{Status: SignerViewed},
	}
	if got := CountByStatus(signers, SignerSigned); got != 2 {
		t.Fatalf("signed = %d, want 2", got)
	}
	if got := CountByStatus(signers, SignerDeclined); got != 0 {
		t.Fatalf("declined = %d, want 0", got)
	}
}

func TestSequentialTurn(t *testing.T) {
	signers := []Signer{
		{ID: "a", SigningOrder: 1, Status: SignerSigned},
		{ID: "b", SigningOrder: 2, Status: SignerInitiated},
		{ID: "c", SigningOrder: 3, Status: SignerInitiated},
	}
	if !SequentialTurn(signers, "b") {
		t.Fatal("b should be allowed after a signed")
	}
	if SequentialTurn(signers, "c") {
		t.Fatal("c must wait for b")
	}
	if !SequentialTurn(signers, "a") {
		t.Fatal("first signer is always allowed")
	}
	if SequentialTurn(signers, "missing") {
		t.Fatal("unknown signer may not act")
	}
}
