package controllers

// indexPage is the upload form served at the root path.
const indexPage = `<!doctype html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <title>Juno to Shopify CSV</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 2rem; }
        .card { border: 1px solid #e5e5e5; border-radius: 8px; padding: 1.5rem; max-width: 720px; }
        label { display: block; margin-top: 1rem; }
        button { margin-top: 1.5rem; padding: 0.75rem 1.5rem; }
        #status { margin-top: 1rem; color: #155724; }
    </style>
</head>
<body>
    <div class="card">
        <h1>Juno Master Sheet &#10140; Shopify</h1>
        <p>Upload the Juno Master Sheet CSV and a Shopify export template. Receive a ZIP with the Shopify import CSV and a research log.</p>
        <form id="upload-form">
            <label>Master CSV <input type="file" name="master_csv" required /></label>
            <label>Shopify Template CSV <input type="file" name="template_csv" required /></label>
            <button type="submit">Generate CSVs</button>
        </form>
        <div id="status"></div>
    </div>
    <script>
        const form = document.getElementById('upload-form');
        const status = document.getElementById('status');
        form.addEventListener('submit', async (event) => {
            event.preventDefault();
            status.textContent = 'Processing...';
            const data = new FormData(form);
            try {
                const response = await fetch('/enrich', { method: 'POST', body: data });
                if (!response.ok) {
                    throw new Error('Failed to generate CSVs');
                }
                const blob = await response.blob();
                const url = window.URL.createObjectURL(blob);
                const a = document.createElement('a');
                a.href = url;
                a.download = 'shopify_export_bundle.zip';
                document.body.appendChild(a);
                a.click();
                a.remove();
                status.textContent = 'Download ready: shopify_export_bundle.zip';
            } catch (error) {
                status.textContent = error.message;
                status.style.color = '#a00';
            }
        });
    </script>
</body>
</html>
`
