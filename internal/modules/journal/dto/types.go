package dto

type EntryOutput struct {
	Index int
	Text  string
	Date  string
}

type ListOutput struct {
	Entries []EntryOutput
	Total   int
}
