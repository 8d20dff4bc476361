package storage

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned upload in a folder",
			url:  "https://res.cloudinary.com/demo/image/upload/v1717000000/clinics/abc123.png",
			want: "clinics/abc123",
		},
		{
			name: "no version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/doctors/xyz.jpg",
			want: "doctors/xyz",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/v99/clinics/plain",
			want: "clinics/plain",
		},
		{
			name: "empty url",
			url:  "",
			want: "",
		},
		{
			name: "not a cloudinary upload url",
			url:  "https://example.com/images/photo.png",
			want: "",
		},
		{
			name: "upload with nothing after it",
			url:  "https://res.cloudinary.com/demo/image/upload",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PublicIDFromURL(tc.url); got != tc.want {
				t.Fatalf("PublicIDFromURL(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}
