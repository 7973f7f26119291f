package domain

// PostProcessStatus - итог необязательной постобработки
type PostProcessStatus string

const (
	PostProcessSuccess PostProcessStatus = "success"
	PostProcessSkipped PostProcessStatus = "skipped"
)

// PostProcessResult - результат best-effort шага (склейка изображений).
// Никогда не превращается в ошибку запуска.
type PostProcessResult struct {
	Status PostProcessStatus `json:"status"`
	Path   string            `json:"path,omitempty"`
	Reason string            `json:"reason,omitempty"`
}

// Skipped создает результат "пропущено" с причиной
func Skipped(reason string) PostProcessResult {
	return PostProcessResult{Status: PostProcessSkipped, Reason: reason}
}

// Succeeded создает успешный результат
func Succeeded(path string) PostProcessResult {
	return PostProcessResult{Status: PostProcessSuccess, Path: path}
}
