package controller

import (
	appcontext "github.com/pann/pdfthumb/internal/app_context"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index   *IndexController
	Convert *ConvertController
	File    *FileController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:   &IndexController{baseController: bc},
		Convert: &ConvertController{baseController: bc},
		File:    &FileController{baseController: bc},
	}
}
