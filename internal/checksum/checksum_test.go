package checksum

import "testing"

func TestSum_KnownDigest(t *testing.T) {
	got := Sum([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("Sum = %s, want %s", got, want)
	}
}

func TestSum_EmptyInput(t *testing.T) {
	got := Sum(nil)
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Errorf("Sum = %s, want %s", got, want)
	}
}

func TestSum_DiffersPerInput(t *testing.T) {
	if Sum([]byte("a")) == Sum([]byte("b")) {
		t.Error("different inputs should not collide")
	}
}

func TestShort(t *testing.T) {
	sum := Sum([]byte("abc"))
	if got := Short(sum); got != sum[:12] {
		t.Errorf("Short = %s, want %s", got, sum[:12])
	}
	if got := Short("abcd"); got != "abcd" {
		t.Errorf("Short of short input = %s, want abcd", got)
	}
}
