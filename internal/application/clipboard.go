package application

import "context"

// Clipboard は、生成された投稿文をユーザーがコピーできる場所へ書き込むインターフェースです
type Clipboard interface {
	// WriteText は、テキストをクリップボードに書き込みます
	WriteText(ctx context.Context, text string) error
}
