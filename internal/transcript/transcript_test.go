package transcript

import "testing"

func sample() *Transcript {
	return &Transcript{
		VideoID: "vid-1",
		Words: []Word{
			{Text: "that", Start: 0.1, End: 0.3},
			{Text: "is", Start: 0.35, End: 0.5},
			{Text: "fine", Start: 0.55, End: 0.9},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	original := sample()
	raw, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.VideoID != original.VideoID {
		t.Errorf("VideoID = %q, want %q", decoded.VideoID, original.VideoID)
	}
	if len(decoded.Words) != len(original.Words) {
		t.Fatalf("word count = %d, want %d", len(decoded.Words), len(original.Words))
	}
	if decoded.Words[2] != original.Words[2] {
		t.Errorf("word 2 = %+v, want %+v", decoded.Words[2], original.Words[2])
	}
}

func TestUnmarshalRejectsEmpty(t *testing.T) {
	if _, err := Unmarshal("  "); err == nil {
		t.Error("empty payload should fail")
	}
	if _, err := Unmarshal("{not json"); err == nil {
		t.Error("malformed payload should fail")
	}
}

func TestDuration(t *testing.T) {
	if got := sample().Duration(); got != 0.9 {
		t.Errorf("Duration = %v, want 0.9", got)
	}
	var empty *Transcript
	if got := empty.Duration(); got != 0 {
		t.Errorf("nil Duration = %v, want 0", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transcript)
		wantErr bool
	}{
		{"valid", func(*Transcript) {}, false},
		{"empty text", func(tr *Transcript) { tr.Words[1].Text = " " }, true},
		{"end before start", func(tr *Transcript) { tr.Words[0].End = 0.05 }, true},
		{"out of order", func(tr *Transcript) { tr.Words[2].Start = 0.0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := sample()
			tt.mutate(tr)
			err := tr.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
