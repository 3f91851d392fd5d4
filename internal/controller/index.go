package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

const uploadPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>PDF to JPG Converter</title>
</head>
<body>
  <h1>PDF to JPG Converter</h1>
  <p>Upload one or more PDF files; the first page of each is returned as a resized JPEG.</p>
  <form action="/api/v1/convert" method="post" enctype="multipart/form-data">
    <p><input type="file" name="files" accept=".pdf" multiple required></p>
    <p><label>DPI <input type="number" name="dpi" value="200" min="72" max="600"></label></p>
    <p><label>Quality <input type="number" name="quality" value="95" min="1" max="100"></label></p>
    <p><label>Scale factor <input type="number" name="scale_factor" value="0.6" min="0.1" max="1" step="0.05"></label></p>
    <p><button type="submit">Convert</button></p>
  </form>
</body>
</html>
`

func (ic IndexController) Index(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(uploadPage))
}
