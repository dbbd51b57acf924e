package prog

import "flag"

// FlagSet wraps a [flag.FlagSet] and provides methods to register flags shared
// by multiple subprograms. Each shared flag is registered once, the first time
// its method is called.
type FlagSet struct {
	*flag.FlagSet
	json *bool
	db   *string
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"show the output of -buildinfo, -version or matching in JSON")
		fs.json = &json
	}
	return fs.json
}

// DB returns a pointer to the value of the -db flag.
func (fs *FlagSet) DB() *string {
	if fs.db == nil {
		var db string
		fs.StringVar(&db, "db", "",
			"path to a database caching compiled patterns")
		fs.db = &db
	}
	return fs.db
}
