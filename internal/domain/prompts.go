package domain

import "fmt"

// ImageSafetyDirective は、すべての画像プロンプトに付与される安全・スタイル指示です
const ImageSafetyDirective = "This image is for a professional social media platform (LinkedIn). " +
	"It must be strictly copyright-safe. Do not include any existing characters, logos, brands, or identifiable real people. " +
	"The style should be modern, professional, and abstract or illustrative. Avoid photorealism unless specifically asked. " +
	"The overall tone should be positive and business-appropriate."

// PostSystemInstruction は、投稿文生成で常に付与されるシステム指示です
const PostSystemInstruction = "You are an expert LinkedIn content creator. Your goal is to write engaging, professional posts. " +
	"Posts should be well-structured with clear paragraphs, use 3-5 relevant hashtags, " +
	"and have a call-to-action or engaging question at the end. " +
	"The tone should be authoritative yet approachable."

// BuildImagePrompt は、プロンプトに安全指示を付与します
func BuildImagePrompt(prompt string) string {
	return fmt.Sprintf("%s. %s", prompt, ImageSafetyDirective)
}

// BuildSummarizePrompt は、記事から5〜10語のテーマを抽出する指示を作成します
func BuildSummarizePrompt(articleText string) string {
	return fmt.Sprintf("Summarize the following article text into a short, descriptive phrase (5-10 words) that captures its core theme. "+
		"This phrase will be used to generate an image. Focus on concepts, not specific details. Article: \"%s\"", articleText)
}

// BuildPostPrompt は、トピックまたは記事から投稿文生成の指示を作成します
func BuildPostPrompt(source PostSource) string {
	if source.HasArticle() {
		return fmt.Sprintf("Create a LinkedIn post based on the following article text. "+
			"Summarize the key insights and present them in a compelling way.\n\nArticle: \"\"\"%s\"\"\"", source.Article())
	}
	return fmt.Sprintf("Create a LinkedIn post about the following topic: \"%s\"", source.Topic())
}
