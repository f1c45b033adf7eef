package formats

var defaultCategories = []Category{
	{Name: "Documents", Extensions: []string{"PDF", "DOC", "DOCX", "ODT", "RTF", "TXT", "MD", "TEX", "EPUB", "MOBI", "PAGES"}},
	{Name: "Spreadsheets", Extensions: []string{"XLS", "XLSX", "ODS", "CSV", "TSV", "NUMBERS"}},
	{Name: "Presentations", Extensions: []string{"PPT", "PPTX", "ODP", "KEY"}},
	{Name: "Images", Extensions: []string{"JPG", "JPEG", "PNG", "GIF", "BMP", "TIF", "TIFF", "WEBP", "HEIC", "SVG", "ICO", "RAW", "CR2", "NEF", "PSD"}},
	{Name: "Audio", Extensions: []string{"MP3", "WAV", "FLAC", "AAC", "OGG", "M4A", "WMA", "AIFF", "OPUS"}},
	{Name: "Videos", Extensions: []string{"MP4", "MKV", "AVI", "MOV", "WMV", "FLV", "WEBM", "M4V", "MPG", "MPEG"}},
	{Name: "Archives", Extensions: []string{"ZIP", "RAR", "7Z", "TAR", "GZ", "BZ2", "XZ", "TGZ", "ZST"}},
	{Name: "Disk Images", Extensions: []string{"ISO", "IMG", "DMG", "VHD", "VMDK"}},
	{Name: "Executables", Extensions: []string{"EXE", "MSI", "APP", "DEB", "RPM", "APK", "APPIMAGE", "BIN", "SH", "BAT"}},
	{Name: "Code", Extensions: []string{"GO", "PY", "JS", "TS", "JAVA", "C", "CPP", "H", "RS", "RB", "PHP", "HTML", "CSS", "JSON", "YAML", "YML", "TOML", "XML", "SQL"}},
	{Name: "Fonts", Extensions: []string{"TTF", "OTF", "WOFF", "WOFF2"}},
}

// Default returns the built-in Format Table.
func Default() *Table {
	return MustNew(defaultCategories)
}
