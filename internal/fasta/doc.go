// Package fasta loads nucleotide sequences from FASTA files.
//
// Files may be plain text or gzip-compressed; "-" reads standard input.
// All records are joined into a single sequence, which is returned as RNA
// (upper case, T read as U).
package fasta
