package blob

import "testing"

func TestNormaliseEndpoint(t *testing.T) {
	cases := []struct {
		in       string
		endpoint string
		secure   bool
		wantErr  bool
	}{
		{"minio:9000", "minio:9000", false, false},
		{"http://minio:9000", "minio:9000", false, false},
		{"https://blobs.example.com", "blobs.example.com", true, false},
		{" https://blobs.example.com ", "blobs.example.com", true, false},
		{"", "", false, true},
		{"https://blobs.example.com/some/path", "", false, true},
	}
	for _, c := range cases {
		endpoint, secure, err := normaliseEndpoint(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got %q", c.in, endpoint)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.in, err)
		}
		if endpoint != c.endpoint || secure != c.secure {
			t.Fatalf("%q: got (%q, %v), want (%q, %v)", c.in, endpoint, secure, c.endpoint, c.secure)
		}
	}
}
