package split

//go:generate go run github.com/abice/go-enum@v0.9.2 -f=$GOFILE

// Verification outcome of comparing the compiled stylesheet to the original.
// ENUM(unknown, verified, mismatch, missing)
type Status int
