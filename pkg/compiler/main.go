// Package compiler provides the lexer, parser, and code generator for the
// exit language: a single statement "exit <digits>;" compiled to an exit
// syscall in native assembly.
//
// Pipeline: source → Lex → Parse → Generate → assembly text
//
// The package does no I/O; reading sources and running the assembler and
// linker are left to the caller.
package compiler
