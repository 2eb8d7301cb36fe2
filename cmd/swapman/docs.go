package main

// @title swapman management API
// @version 1.0
// @description Management layer for the llama-swap model-serving proxy: config reconciliation, model files and swap service health.
// @BasePath /
