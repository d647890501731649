package app

// Messages are the user-facing alert texts.
type Messages struct {
	NoFile       string
	UploadFailed string
	EmptyPool    string
}

func DefaultMessages() Messages {
	return Messages{
		NoFile:       "Please choose a file first.",
		UploadFailed: "An error occurred while uploading the file.",
		EmptyPool:    "No questions were found in the file! Please check the file format (++++ and ==== separators).",
	}
}

// merge fills blank fields from the defaults.
func (m Messages) merge(defaults Messages) Messages {
	if m.NoFile == "" {
		m.NoFile = defaults.NoFile
	}
	if m.UploadFailed == "" {
		m.UploadFailed = defaults.UploadFailed
	}
	if m.EmptyPool == "" {
		m.EmptyPool = defaults.EmptyPool
	}
	return m
}
