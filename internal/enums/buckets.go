package enums

const (
	FILE_BUCKET_SNAPSHOTS  = "board-snapshots"
	FILE_BUCKET_REFERENCES = "reference-images"
)
