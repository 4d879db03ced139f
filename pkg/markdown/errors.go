package markdown

import "errors"

var (
	ErrInvalidFrontmatter = errors.New("markdown: invalid front matter")
	ErrConvert            = errors.New("markdown: conversion failed")
)
